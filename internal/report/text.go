package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cubeof2/jenness-battle-simulator/internal/sim"
	"github.com/cubeof2/jenness-battle-simulator/internal/stats"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
)

// StatsLines summarises one side's run lengths followed by its histogram.
func StatsLines(name string, data []int) []string {
	if len(data) == 0 {
		return []string{fmt.Sprintf("%s: No data collected.", name)}
	}
	s := stats.Summarize(data)
	lines := []string{
		"",
		fmt.Sprintf("--- %s Run Length Stats ---", name),
		fmt.Sprintf("Mean:   %.2f", s.Mean),
		fmt.Sprintf("Median: %.2f", s.Median),
		fmt.Sprintf("Min:    %d", s.Min),
		fmt.Sprintf("Max:    %d", s.Max),
		fmt.Sprintf("IQR:    %.2f (Q1=%.2f, Q3=%.2f)", s.IQR(), s.Q1, s.Q3),
		"",
	}
	return append(lines, stats.Histogram(name, data)...)
}

// RegressionLines renders the run length regression of a batch.
func RegressionLines(b *sim.Batch) []string {
	lines := []string{"", "=== Regression Analysis: Run Length vs Win ==="}
	reg, ok := b.Regression()
	if !ok {
		return append(lines, fmt.Sprintf("Insufficient data for regression (need at least %d battles)", stats.MinRegressionBattles))
	}
	return append(lines, reg.Lines()...)
}

// ScenarioLines is the full text report of one batch.
func ScenarioLines(b *sim.Batch) []string {
	n := len(b.Results)
	wins := b.Wins()
	undecided := b.Undecided()
	lines := []string{
		fmt.Sprintf("=== Simulation Results: %s ===", b.Scenario.ID),
	}
	if b.Scenario.Description != "" {
		lines = append(lines, b.Scenario.Description)
	}
	lines = append(lines,
		fmt.Sprintf("Battles: %d", n),
		fmt.Sprintf("PC wins: %d (%.1f%%)", wins, b.WinRate()),
		fmt.Sprintf("NPC wins: %d", n-wins-undecided),
	)
	if undecided > 0 {
		lines = append(lines, fmt.Sprintf("Undecided (turn limit): %d", undecided))
	}
	lines = append(lines, StatsLines("Player", b.RollingRuns())...)
	lines = append(lines, StatsLines("Enemy", b.PassiveRuns())...)
	return append(lines, RegressionLines(b)...)
}

// Write prints lines to w. Styled output colours titles and section headers.
func Write(w io.Writer, lines []string, styled bool) error {
	for _, line := range lines {
		if styled {
			switch {
			case strings.HasPrefix(line, "==="):
				line = titleStyle.Render(line)
			case strings.HasPrefix(line, "---"):
				line = sectionStyle.Render(line)
			}
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
