package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.TraceLevel, ParseLevel("TRACE"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("Warn"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
}

func TestNewWritesToBothOutputs(t *testing.T) {
	var console, file bytes.Buffer
	log := New("info", &console, &file)

	log.Debug().Msg("hidden")
	log.Info().Str("scenario", "duel").Msg("batch complete")

	assert.NotContains(t, file.String(), "hidden")
	assert.Contains(t, file.String(), "batch complete")
	assert.Contains(t, file.String(), "scenario=duel")
	assert.Contains(t, console.String(), "batch complete")
}
