package sim

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/cubeof2/jenness-battle-simulator/internal/battle"
	"github.com/cubeof2/jenness-battle-simulator/internal/combatant"
	"github.com/cubeof2/jenness-battle-simulator/internal/dice"
	"github.com/cubeof2/jenness-battle-simulator/internal/scenario"
	"github.com/cubeof2/jenness-battle-simulator/internal/stats"
)

// Runner plays many independent battles of one scenario in parallel.
type Runner struct {
	// Workers bounds concurrent battles; zero uses GOMAXPROCS.
	Workers int
	// Seed fixes the batch. Battle i always uses stream i of this seed, so
	// results do not depend on Workers.
	Seed     uint64
	MaxTurns int
	Logger   zerolog.Logger
	// Trace, when set, receives every turn of the first battle.
	Trace func(battle.Turn)
	// OnBattle is called after each battle. It may be called concurrently.
	OnBattle func()
}

// Run plays n battles of s.
func (r *Runner) Run(ctx context.Context, s scenario.Scenario, n int) (*Batch, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	workers := r.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]battle.Result, n)
	// Wait always cancels gctx, so only the caller's ctx is checked afterwards.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range n {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := r.play(s, i)
			if err != nil {
				return err
			}
			results[i] = res
			if r.OnBattle != nil {
				r.OnBattle()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	batch := &Batch{Scenario: s, Results: results}
	r.Logger.Info().
		Str("scenario", s.ID).
		Int("battles", n).
		Float64("win_rate", batch.WinRate()).
		Int("undecided", batch.Undecided()).
		Msg("batch complete")
	return batch, nil
}

func (r *Runner) play(s scenario.Scenario, i int) (battle.Result, error) {
	rosters, err := s.Build()
	if err != nil {
		return battle.Result{}, err
	}

	cfg := battle.Config{
		Rolling:  rosters.Rolling,
		Passive:  rosters.Passive,
		Start:    rosters.Start,
		Source:   dice.NewStream(r.Seed, uint64(i)),
		MaxTurns: r.MaxTurns,
		Logger:   r.Logger.With().Str("scenario", s.ID).Int("battle", i+1).Logger(),
	}
	if i == 0 {
		cfg.OnTurn = r.Trace
	} else {
		// only the first battle is traced turn by turn
		cfg.Logger = cfg.Logger.Level(max(zerolog.InfoLevel, r.Logger.GetLevel()))
	}

	b, err := battle.New(cfg)
	if err != nil {
		return battle.Result{}, err
	}
	res, err := b.Run()
	if errors.Is(err, battle.ErrTurnLimit) {
		return res, nil
	}
	if err != nil {
		return battle.Result{}, fmt.Errorf("battle %d: %w", i+1, err)
	}
	return res, nil
}

// Batch holds the results of a run, in battle order.
type Batch struct {
	Scenario scenario.Scenario
	Results  []battle.Result
}

// Wins counts PC victories.
func (b *Batch) Wins() int {
	wins := 0
	for _, r := range b.Results {
		if r.Winner == combatant.SideRolling {
			wins++
		}
	}
	return wins
}

// Undecided counts battles stopped by the turn cap.
func (b *Batch) Undecided() int {
	n := 0
	for _, r := range b.Results {
		if r.Winner == combatant.SideNone {
			n++
		}
	}
	return n
}

// WinRate is the PC win percentage.
func (b *Batch) WinRate() float64 {
	if len(b.Results) == 0 {
		return 0
	}
	return float64(b.Wins()) / float64(len(b.Results)) * 100
}

// RollingRuns pools every PC run length across the batch.
func (b *Batch) RollingRuns() []int {
	var runs []int
	for _, r := range b.Results {
		runs = append(runs, r.RollingRuns...)
	}
	return runs
}

// PassiveRuns pools every NPC run length across the batch.
func (b *Batch) PassiveRuns() []int {
	var runs []int
	for _, r := range b.Results {
		runs = append(runs, r.PassiveRuns...)
	}
	return runs
}

// Samples reduces each battle to its mean run lengths and winner.
func (b *Batch) Samples() []stats.BattleSample {
	out := make([]stats.BattleSample, len(b.Results))
	for i, r := range b.Results {
		out[i] = stats.BattleSample{
			PCWin:      r.Winner == combatant.SideRolling,
			PCMeanRun:  stats.Mean(r.RollingRuns),
			NPCMeanRun: stats.Mean(r.PassiveRuns),
		}
	}
	return out
}

// Regression analyses run lengths against victories.
func (b *Batch) Regression() (stats.Regression, bool) {
	return stats.Analyze(b.Samples())
}
