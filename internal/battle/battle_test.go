package battle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cubeof2/jenness-battle-simulator/internal/combatant"
	"github.com/cubeof2/jenness-battle-simulator/internal/dice"
	"github.com/cubeof2/jenness-battle-simulator/internal/targeting"
)

func pc(name string, hp int, expertAttack bool) *combatant.Rolling {
	return combatant.NewRolling(combatant.Stats{
		Name:            name,
		HP:              hp,
		ExpertiseAttack: expertAttack,
		Strategy:        targeting.LowestThreshold,
	}, combatant.DefaultAptitude)
}

func npc(name string, hp, dt int) *combatant.Passive {
	return combatant.NewPassive(combatant.Stats{Name: name, HP: hp}, dt)
}

func sum(runs []int) int {
	total := 0
	for _, r := range runs {
		total += r
	}
	return total
}

func TestSelectActor(t *testing.T) {
	roster := []*combatant.Rolling{pc("Ayla", 4, false), pc("Bryn", 4, true), pc("Cora", 4, true)}
	acted := map[combatant.Combatant]struct{}{}

	t.Run("First expert among those yet to act", func(t *testing.T) {
		assert.Equal(t, "Bryn", SelectActor(roster, acted).Name())

		acted[roster[1]] = struct{}{}
		assert.Equal(t, "Cora", SelectActor(roster, acted).Name())

		acted[roster[2]] = struct{}{}
		assert.Equal(t, "Ayla", SelectActor(roster, acted).Name())
	})

	t.Run("Everyone acted falls back to all living", func(t *testing.T) {
		acted[roster[0]] = struct{}{}
		assert.Equal(t, "Bryn", SelectActor(roster, acted).Name())
	})

	t.Run("Deterministic for the same state", func(t *testing.T) {
		for range 20 {
			assert.Equal(t, "Bryn", SelectActor(roster, acted).Name())
		}
	})

	t.Run("Dead members never act", func(t *testing.T) {
		roster[1].TakeDamage(4)
		assert.Equal(t, "Cora", SelectActor(roster, map[combatant.Combatant]struct{}{}).Name())
	})

	t.Run("Empty living roster panics", func(t *testing.T) {
		dead := []*combatant.Passive{npc("Ghost", 0, 10)}
		assert.PanicsWithValue(t, ErrNoLivingActor, func() {
			SelectActor(dead, map[combatant.Combatant]struct{}{})
		})
	})
}

func TestFrictionActivatesAfterEveryoneActs(t *testing.T) {
	pcs := []*combatant.Rolling{pc("Ayla", 4, false), pc("Bryn", 4, false), pc("Cora", 4, false)}
	boss := npc("Ogre", 100, 14)

	src := dice.NewScripted(
		15, 1, // no friction
		15, 1,
		15, 1,
		15, // friction 1 cancels the boon
		15, 1, // friction 2, bane d4
		2, 1, // friction 3, bane d6, failure
	)
	b, err := New(Config{Rolling: pcs, Passive: []*combatant.Passive{boss}, Source: src})
	require.NoError(t, err)

	var frictions []int
	var actors []string
	for i := range 6 {
		turn, ok := b.Step()
		require.True(t, ok)
		frictions = append(frictions, turn.Friction)
		actors = append(actors, turn.Actor)

		if i < 2 {
			assert.False(t, b.State().FrictionActive, "turn %d", turn.Number)
		}
		if i >= 2 && i < 5 {
			assert.True(t, b.State().FrictionActive, "turn %d", turn.Number)
			assert.False(t, turn.Shifted)
		}
	}

	assert.Equal(t, []int{0, 0, 0, 1, 2, 3}, frictions)
	assert.Equal(t, []string{"Ayla", "Bryn", "Cora", "Ayla", "Ayla", "Ayla"}, actors)
	assert.Equal(t, 95, boss.HP())
	assert.Equal(t, 0, src.Remaining())

	// the failed sixth attack hands momentum over and resets the run
	st := b.State()
	assert.Equal(t, combatant.SidePassive, st.Momentum)
	assert.False(t, st.FrictionActive)
	assert.Equal(t, 0, st.FrictionStacks)
	assert.Equal(t, 0, st.RunLength)
	assert.Empty(t, st.RunActors)
	assert.Equal(t, []int{6}, st.RollingRuns)
}

func TestDefenderStealsMomentum(t *testing.T) {
	hero := pc("Ayla", 4, false)
	b, err := New(Config{
		Rolling: []*combatant.Rolling{hero},
		Passive: []*combatant.Passive{npc("Orc", 3, 12)},
		Start:   combatant.SidePassive,
		// target pick, natural 20, boon
		Source: dice.NewScripted(1, 20, 1),
	})
	require.NoError(t, err)

	turn, ok := b.Step()
	require.True(t, ok)
	assert.Equal(t, dice.Triumph, turn.Roll.Outcome)
	assert.True(t, turn.Shifted)
	assert.Equal(t, 0, turn.Damage)
	assert.Equal(t, combatant.SideRolling, b.State().Momentum)
	assert.Equal(t, []int{1}, b.State().PassiveRuns)
}

func TestStateReturnsCopy(t *testing.T) {
	hero := pc("Ayla", 4, false)
	b, err := New(Config{
		Rolling: []*combatant.Rolling{hero},
		Passive: []*combatant.Passive{npc("Orc", 3, 12)},
		Start:   combatant.SidePassive,
		// defence: target pick, natural 20, boon; attack: d20, boon
		Source: dice.NewScripted(1, 20, 1, 10, 1),
	})
	require.NoError(t, err)

	for range 2 {
		_, ok := b.Step()
		require.True(t, ok)
	}

	st := b.State()
	require.Len(t, st.RunActors, 1)
	require.Equal(t, []int{1}, st.PassiveRuns)

	clear(st.RunActors)
	st.PassiveRuns[0] = 99

	again := b.State()
	assert.Contains(t, again.RunActors, combatant.Combatant(hero))
	assert.Equal(t, []int{1}, again.PassiveRuns)
	assert.Equal(t, 1, again.RunLength)
}

func TestCatastrophicDefense(t *testing.T) {
	hero := pc("Ayla", 4, false)
	b, err := New(Config{
		Rolling: []*combatant.Rolling{hero},
		Passive: []*combatant.Passive{npc("Troll", 3, 20)},
		Start:   combatant.SidePassive,
		Source:  dice.NewScripted(1, 1, 1),
	})
	require.NoError(t, err)

	turn, ok := b.Step()
	require.True(t, ok)
	assert.Equal(t, dice.Catastrophe, turn.Roll.Outcome)
	assert.Equal(t, 2, turn.Damage)
	assert.Equal(t, 2, hero.HP())
	assert.False(t, turn.Shifted)
}

func TestWinnerDetermination(t *testing.T) {
	t.Run("Passive side wins when the last PC falls", func(t *testing.T) {
		b, err := New(Config{
			Rolling: []*combatant.Rolling{pc("Ayla", 1, false)},
			Passive: []*combatant.Passive{npc("Orc", 3, 12)},
			Start:   combatant.SidePassive,
			Source:  dice.NewScripted(1, 1, 1),
		})
		require.NoError(t, err)

		res, err := b.Run()
		require.NoError(t, err)
		assert.Equal(t, combatant.SidePassive, res.Winner)
		assert.Equal(t, []int{1}, res.PassiveRuns)
		assert.Empty(t, res.RollingRuns)
		assert.Equal(t, 1, res.Turns)
	})

	t.Run("Rolling side wins when the last NPC falls", func(t *testing.T) {
		b, err := New(Config{
			Rolling: []*combatant.Rolling{pc("Ayla", 4, false)},
			Passive: []*combatant.Passive{npc("Goblin", 1, 12)},
			Source:  dice.NewScripted(15, 1),
		})
		require.NoError(t, err)

		res, err := b.Run()
		require.NoError(t, err)
		assert.Equal(t, combatant.SideRolling, res.Winner)
		assert.Equal(t, []int{1}, res.RollingRuns)
		assert.Equal(t, 1, res.Turns)

		_, ok := b.Step()
		assert.False(t, ok)
	})
}

func TestOneOnOneProperties(t *testing.T) {
	for seed := range uint64(300) {
		hero := combatant.NewRolling(combatant.Stats{Name: "PC", HP: combatant.DefaultPCHP}, combatant.DefaultAptitude)
		goblin := npc("Goblin", 1, combatant.DefaultDT)

		var turns []Turn
		b, err := New(Config{
			Rolling:  []*combatant.Rolling{hero},
			Passive:  []*combatant.Passive{goblin},
			Source:   dice.NewStream(seed, 0),
			MaxTurns: 10000,
			OnTurn:   func(t Turn) { turns = append(turns, t) },
		})
		require.NoError(t, err)

		res, err := b.Run()
		require.NoError(t, err, "seed %d", seed)
		require.NotEqual(t, combatant.SideNone, res.Winner)

		assert.Equal(t, res.Turns, sum(res.RollingRuns)+sum(res.PassiveRuns), "seed %d", seed)
		assert.Len(t, turns, res.Turns)
		assert.Equal(t, res.Winner == combatant.SideRolling, !goblin.Alive(), "seed %d", seed)
		assert.Equal(t, res.Winner == combatant.SidePassive, !hero.Alive(), "seed %d", seed)
		for _, r := range append(res.RollingRuns, res.PassiveRuns...) {
			assert.GreaterOrEqual(t, r, 1)
		}
	}
}

func TestTurnLimit(t *testing.T) {
	b, err := New(Config{
		Rolling:  []*combatant.Rolling{pc("Ayla", 4, false)},
		Passive:  []*combatant.Passive{npc("Wall", 1000, 0)},
		Source:   dice.NewSource(3),
		MaxTurns: 5,
	})
	require.NoError(t, err)

	res, err := b.Run()
	assert.ErrorIs(t, err, ErrTurnLimit)
	assert.Equal(t, combatant.SideNone, res.Winner)
	assert.Equal(t, 5, res.Turns)
	assert.Equal(t, 5, sum(res.RollingRuns)+sum(res.PassiveRuns))
}
