package trace

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cubeof2/jenness-battle-simulator/internal/battle"
	"github.com/cubeof2/jenness-battle-simulator/internal/combatant"
	"github.com/cubeof2/jenness-battle-simulator/internal/dice"
)

func TestRecordAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.jsonl")
	rec, err := Create(path)
	require.NoError(t, err)

	hero := combatant.NewRolling(combatant.Stats{Name: "PC 1", HP: 4}, 5)
	goblin := combatant.NewPassive(combatant.Stats{Name: "Goblin", HP: 1}, 12)
	b, err := battle.New(battle.Config{
		Rolling: []*combatant.Rolling{hero},
		Passive: []*combatant.Passive{goblin},
		Source:  dice.NewScripted(1, 15, 1),
		OnTurn:  rec.Record,
	})
	require.NoError(t, err)

	res, err := b.Run()
	require.NoError(t, err)
	require.NoError(t, rec.Close())

	entries, err := Read(path)
	require.NoError(t, err)
	require.Len(t, entries, res.Turns)

	first := entries[0]
	assert.Equal(t, 1, first.Turn)
	assert.Equal(t, "pcs", first.Side)
	assert.Equal(t, "PC 1", first.Actor)
	assert.Equal(t, "Goblin", first.Target)
	assert.Equal(t, "Clean Success", first.Roll.Outcome)
	assert.Equal(t, 15, first.Roll.Natural)
	assert.Equal(t, 1, first.Damage)
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.jsonl"))
	assert.Error(t, err)
}
