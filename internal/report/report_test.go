package report

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cubeof2/jenness-battle-simulator/internal/rules"
	"github.com/cubeof2/jenness-battle-simulator/internal/scenario"
	"github.com/cubeof2/jenness-battle-simulator/internal/sim"
)

func TestStatsLines(t *testing.T) {
	lines := StatsLines("Player", []int{1, 2, 3, 4, 5, 6, 7, 8})
	text := strings.Join(lines, "\n")
	assert.Contains(t, text, "--- Player Run Length Stats ---")
	assert.Contains(t, text, "Mean:   4.50")
	assert.Contains(t, text, "IQR:    4.50 (Q1=2.25, Q3=6.75)")
	assert.Contains(t, text, "--- Player Run Length Histogram ---")

	assert.Equal(t, []string{"Enemy: No data collected."}, StatsLines("Enemy", nil))
}

func TestScenarioLines(t *testing.T) {
	s := scenario.Scenario{
		ID:          "duel",
		Description: "one on one",
		PCs:         []scenario.PC{{Name: "PC 1"}},
		NPCs:        []scenario.NPC{{Name: "NPC 1", HP: scenario.Int(1), DT: scenario.Int(12)}},
	}

	t.Run("Enough battles for regression", func(t *testing.T) {
		batch, err := (&sim.Runner{Seed: 3, MaxTurns: 10000}).Run(context.Background(), s, 40)
		require.NoError(t, err)

		text := strings.Join(ScenarioLines(batch), "\n")
		assert.Contains(t, text, "=== Simulation Results: duel ===")
		assert.Contains(t, text, "Battles: 40")
		assert.Contains(t, text, "Run Length Difference (PC - NPC) vs PC Win:")
		assert.Contains(t, text, "Interpretation:")
	})

	t.Run("Too few battles", func(t *testing.T) {
		batch, err := (&sim.Runner{Seed: 3, MaxTurns: 10000}).Run(context.Background(), s, 5)
		require.NoError(t, err)
		text := strings.Join(ScenarioLines(batch), "\n")
		assert.Contains(t, text, "Insufficient data for regression (need at least 10 battles)")
	})
}

func TestWriteStyling(t *testing.T) {
	var plain bytes.Buffer
	require.NoError(t, Write(&plain, []string{"=== Title ===", "body"}, false))
	assert.Equal(t, "=== Title ===\nbody\n", plain.String())

	var styled bytes.Buffer
	require.NoError(t, Write(&styled, []string{"=== Title ===", "body"}, true))
	assert.Contains(t, styled.String(), "Title")
	assert.Contains(t, styled.String(), "body\n")
}

func row(id string, pcs, npcs int, offset, winRate, r float64, status rules.Status) Row {
	return Row{
		ID: id,
		Metrics: rules.Metrics{
			WinRate:       winRate,
			R:             r,
			Offset:        offset,
			Ratio:         float64(npcs) / float64(pcs),
			PCCount:       pcs,
			NPCCount:      npcs,
			HasRegression: r != 0,
		},
		Label:  "Strong positive",
		Status: status,
	}
}

func TestWriteMarkdown(t *testing.T) {
	rows := []Row{
		row("5v5_off9", 5, 5, 9, 60, 0.5, rules.StatusPass),
		row("1v1_off9", 1, 1, 9, 40, 0.3, rules.StatusFail),
		row("1v2_off5", 1, 2, 5, 20, 0, rules.StatusNone),
		row("1v1_off5", 1, 1, 5, 80, 0.4, rules.StatusNone),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, "benchmarks.json", rows))
	md := buf.String()

	assert.Contains(t, md, "# High-Resolution Balance Report: benchmarks.json")
	assert.Contains(t, md, "| Ratio (NPC vs PC) | Off +5 | Off +9 |")
	// 1:1 is labelled by its first row and averages 1v1 with 5v5 at offset 9
	assert.Contains(t, md, "| **5 NPC vs 5 PC** | 80.0% | 50.0% |")
	assert.Contains(t, md, "| **2 NPC vs 1 PC** | 20.0% | --- |")
	assert.Contains(t, md, "| 1.0:1 | 1 | 1 | 60.0% | 0.3500 |")
	assert.Contains(t, md, "| 1.0:1 | 5 | 5 | 60.0% | 0.5000 |")
	assert.Contains(t, md, "| `1v2_off5` | +5 | 2:1 | 20.0% | N/A | **Strong positive** | - |")
	assert.Contains(t, md, "| `1v1_off9` | +9 | 1:1 | 40.0% | +0.3000 | **Strong positive** | FAIL |")

	// raw rows are ordered by offset then ratio
	assert.Less(t, strings.Index(md, "`1v1_off5`"), strings.Index(md, "`1v2_off5`"))
	assert.Less(t, strings.Index(md, "`1v2_off5`"), strings.Index(md, "`5v5_off9`"))
}
