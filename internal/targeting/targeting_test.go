package targeting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cubeof2/jenness-battle-simulator/internal/dice"
)

type foe struct {
	name string
	hp   int
	dt   int
}

func (f *foe) Alive() bool    { return f.hp > 0 }
func (f *foe) Threshold() int { return f.dt }

type plain struct {
	name string
	hp   int
}

func (p *plain) Alive() bool { return p.hp > 0 }

func TestParse(t *testing.T) {
	s, err := Parse("")
	require.NoError(t, err)
	assert.Equal(t, Random, s)

	s, err = Parse(" Lowest_DT ")
	require.NoError(t, err)
	assert.Equal(t, LowestThreshold, s)

	_, err = Parse("weakest")
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestSelectLowestThreshold(t *testing.T) {
	enemies := []*foe{
		{name: "Brute", hp: 3, dt: 15},
		{name: "Dead", hp: 0, dt: 5},
		{name: "First", hp: 1, dt: 11},
		{name: "Second", hp: 1, dt: 11},
	}

	t.Run("Lowest living threshold, first on ties", func(t *testing.T) {
		got, ok := Select(LowestThreshold, dice.NewScripted(), enemies)
		require.True(t, ok)
		assert.Equal(t, "First", got.name)
	})

	t.Run("Falls back to random without thresholds", func(t *testing.T) {
		ps := []*plain{{name: "A", hp: 1}, {name: "B", hp: 1}}
		got, ok := Select(LowestThreshold, dice.NewScripted(2), ps)
		require.True(t, ok)
		assert.Equal(t, "B", got.name)
	})
}

func TestSelectRandom(t *testing.T) {
	enemies := []*foe{{name: "A", hp: 0}, {name: "B", hp: 2}, {name: "C", hp: 2}}

	got, ok := Select(Random, dice.NewScripted(2), enemies)
	require.True(t, ok)
	assert.Equal(t, "C", got.name)

	src := dice.NewSource(1)
	for range 200 {
		got, ok := Select(Random, src, enemies)
		require.True(t, ok)
		assert.NotEqual(t, "A", got.name)
	}
}

func TestSelectNoLivingEnemies(t *testing.T) {
	_, ok := Select(Random, dice.NewScripted(), []*foe{{name: "A", hp: 0}})
	assert.False(t, ok)
}
