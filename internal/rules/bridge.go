package rules

import (
	"github.com/cubeof2/jenness-battle-simulator/internal/sim"
	"github.com/cubeof2/jenness-battle-simulator/internal/stats"
)

// MetricsFromBatch aggregates a finished batch.
func MetricsFromBatch(b *sim.Batch) Metrics {
	m := Metrics{
		WinRate:    b.WinRate(),
		PCMeanRun:  stats.Mean(b.RollingRuns()),
		NPCMeanRun: stats.Mean(b.PassiveRuns()),
		Offset:     b.Scenario.Offset(),
		Ratio:      b.Scenario.Ratio(),
		Battles:    len(b.Results),
		PCCount:    len(b.Scenario.PCs),
		NPCCount:   len(b.Scenario.NPCs),
	}
	if reg, ok := b.Regression(); ok {
		m.R = reg.Diff.R
		m.HasRegression = true
	}
	return m
}

// Context converts metrics into CEL variables.
func (m Metrics) Context() map[string]any {
	return map[string]any{
		"win_rate":     m.WinRate,
		"r":            m.R,
		"pc_mean_run":  m.PCMeanRun,
		"npc_mean_run": m.NPCMeanRun,
		"offset":       m.Offset,
		"ratio":        m.Ratio,
		"battles":      int64(m.Battles),
		"pc_count":     int64(m.PCCount),
		"npc_count":    int64(m.NPCCount),
	}
}

// Expect checks an optional expectation. An empty expression has no verdict.
func (r *Registry) Expect(expression string, m Metrics) (Status, error) {
	if expression == "" {
		return StatusNone, nil
	}
	ok, err := r.Check(expression, m.Context())
	if err != nil {
		return StatusError, err
	}
	if ok {
		return StatusPass, nil
	}
	return StatusFail, nil
}
