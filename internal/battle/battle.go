package battle

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/rs/zerolog"

	"github.com/cubeof2/jenness-battle-simulator/internal/combatant"
	"github.com/cubeof2/jenness-battle-simulator/internal/dice"
	"github.com/cubeof2/jenness-battle-simulator/internal/targeting"
)

// ErrTurnLimit is returned when a battle is stopped by its turn cap.
var ErrTurnLimit = errors.New("battle exceeded turn limit")

// Config describes one battle. Rosters are owned by the battle once passed in.
type Config struct {
	Rolling []*combatant.Rolling
	Passive []*combatant.Passive
	// Start defaults to the rolling side.
	Start  combatant.Side
	Source dice.Source
	// MaxTurns stops the battle when positive.
	MaxTurns int
	Logger   zerolog.Logger
	OnTurn   func(Turn)
}

// Result summarises a finished battle.
type Result struct {
	RollingRuns []int          `json:"pc_runs"`
	PassiveRuns []int          `json:"npc_runs"`
	Winner      combatant.Side `json:"winner"`
	Turns       int            `json:"turns"`
}

// Battle runs the momentum loop for two rosters.
type Battle struct {
	rolling  []*combatant.Rolling
	passive  []*combatant.Passive
	src      dice.Source
	maxTurns int
	log      zerolog.Logger
	onTurn   func(Turn)

	state  State
	turns  int
	winner combatant.Side
	done   bool
}

// New prepares a battle. A nil Source is seeded from the operating system.
func New(cfg Config) (*Battle, error) {
	start := cfg.Start
	if start == combatant.SideNone {
		start = combatant.SideRolling
	}
	src := cfg.Source
	if src == nil {
		seed, err := dice.NewSeed()
		if err != nil {
			return nil, err
		}
		src = dice.NewSource(seed)
	}
	return &Battle{
		rolling:  cfg.Rolling,
		passive:  cfg.Passive,
		src:      src,
		maxTurns: cfg.MaxTurns,
		log:      cfg.Logger,
		onTurn:   cfg.OnTurn,
		state:    newState(start),
	}, nil
}

// State returns a copy of the current momentum state.
func (b *Battle) State() State {
	st := b.state
	st.RunActors = maps.Clone(b.state.RunActors)
	st.RollingRuns = slices.Clone(b.state.RollingRuns)
	st.PassiveRuns = slices.Clone(b.state.PassiveRuns)
	return st
}

// Run plays turns until one side is wiped out or the turn cap is hit.
func (b *Battle) Run() (Result, error) {
	for {
		if b.maxTurns > 0 && b.turns >= b.maxTurns && !b.decided() {
			b.state.flush()
			b.done = true
			b.log.Warn().Int("turns", b.turns).Msg("battle stopped at turn limit")
			return b.result(), fmt.Errorf("%w after %d turns", ErrTurnLimit, b.turns)
		}
		if _, ok := b.Step(); !ok {
			return b.result(), nil
		}
	}
}

// Step plays a single turn. It reports false once the battle is over, in
// which case no turn was played.
func (b *Battle) Step() (Turn, bool) {
	if b.done {
		return Turn{}, false
	}

	livingRolling := combatant.Living(b.rolling)
	livingPassive := combatant.Living(b.passive)
	if len(livingRolling) == 0 || len(livingPassive) == 0 {
		b.finish()
		return Turn{}, false
	}

	turn := Turn{Number: b.turns + 1, Side: b.state.Momentum}
	var kept bool

	switch b.state.Momentum {
	case combatant.SideRolling:
		actor := SelectActor(b.rolling, b.state.RunActors)
		target, ok := targeting.Select(actor.Strategy(), b.src, livingPassive)
		if !ok {
			b.finish()
			return Turn{}, false
		}
		turn.Friction = b.state.nextFriction()
		dmg, res := actor.Attack(b.src, target, turn.Friction)
		target.TakeDamage(dmg)

		turn.Actor, turn.Target, turn.Roll = actor.Name(), target.Name(), res
		turn.Damage = dmg
		kept = res.Outcome.Keeps()
		record(&b.state, actor, livingRolling)

	case combatant.SidePassive:
		actor := SelectActor(b.passive, b.state.RunActors)
		target, ok := targeting.Select(actor.Strategy(), b.src, livingRolling)
		if !ok {
			b.finish()
			return Turn{}, false
		}
		turn.Friction = b.state.nextFriction()
		res := target.Defend(b.src, actor, turn.Friction)
		dmg := combatant.DefenseDamage(res.Outcome)
		target.TakeDamage(dmg)

		turn.Actor, turn.Target, turn.Roll = actor.Name(), target.Name(), res
		turn.Damage = dmg
		// the defender steals momentum with a full success
		kept = !res.Outcome.Keeps()
		record(&b.state, actor, livingPassive)

	default:
		b.finish()
		return Turn{}, false
	}

	b.turns++
	if !kept {
		b.state.shift()
		turn.Shifted = true
	}

	b.log.Debug().EmbedObject(turn).Msg("turn")
	if b.onTurn != nil {
		b.onTurn(turn)
	}
	return turn, true
}

func (b *Battle) decided() bool {
	return len(combatant.Living(b.rolling)) == 0 || len(combatant.Living(b.passive)) == 0
}

func (b *Battle) finish() {
	b.state.flush()
	b.done = true
	switch {
	case len(combatant.Living(b.rolling)) == 0:
		b.winner = combatant.SidePassive
	case len(combatant.Living(b.passive)) == 0:
		b.winner = combatant.SideRolling
	}
	b.log.Debug().Stringer("winner", b.winner).Int("turns", b.turns).Msg("battle over")
}

func (b *Battle) result() Result {
	return Result{
		RollingRuns: b.state.RollingRuns,
		PassiveRuns: b.state.PassiveRuns,
		Winner:      b.winner,
		Turns:       b.turns,
	}
}
