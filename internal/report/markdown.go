package report

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/cubeof2/jenness-battle-simulator/internal/rules"
	"github.com/cubeof2/jenness-battle-simulator/internal/sim"
	"github.com/cubeof2/jenness-battle-simulator/internal/stats"
)

// Row is one scenario's line in a benchmark report.
type Row struct {
	ID          string
	Description string
	Metrics     rules.Metrics
	Label       string
	Status      rules.Status
}

// NewRow summarises a batch for the benchmark report.
func NewRow(b *sim.Batch, status rules.Status) Row {
	row := Row{
		ID:          b.Scenario.ID,
		Description: b.Scenario.Description,
		Metrics:     rules.MetricsFromBatch(b),
		Label:       "Insufficient data",
		Status:      status,
	}
	if reg, ok := b.Regression(); ok {
		row.Label = reg.Label()
	}
	return row
}

// R formats the run-difference correlation, or N/A without a regression.
func (r Row) R() string {
	if !r.Metrics.HasRegression {
		return "N/A"
	}
	return fmt.Sprintf("%+.4f", r.Metrics.R)
}

type groupSize struct{ pcs, npcs int }

// WriteMarkdown renders the benchmark report: a win-rate heatmap by team
// ratio and offset, a group size comparison and the raw rows.
func WriteMarkdown(w io.Writer, title string, rows []Row) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# High-Resolution Balance Report: %s\n\n", title)

	offsets := uniqueSorted(rows, func(r Row) float64 { return r.Metrics.Offset })
	ratios := uniqueSorted(rows, func(r Row) float64 { return r.Metrics.Ratio })

	b.WriteString("## 🌡️ The Balance Heatmap (Win Rates)\n")
	b.WriteString("This table shows PC Win Rate (%) for different Offsets and Team Ratios.\n\n")
	b.WriteString("| Ratio (NPC vs PC) |")
	for _, o := range offsets {
		fmt.Fprintf(&b, " Off %+g |", o)
	}
	b.WriteString("\n| :--- |")
	for range offsets {
		b.WriteString(" :---: |")
	}
	b.WriteString("\n")

	for _, ratio := range ratios {
		var sample Row
		for _, r := range rows {
			if r.Metrics.Ratio == ratio {
				sample = r
				break
			}
		}
		fmt.Fprintf(&b, "| **%d NPC vs %d PC** |", sample.Metrics.NPCCount, sample.Metrics.PCCount)
		for _, o := range offsets {
			var rates []float64
			for _, r := range rows {
				if r.Metrics.Ratio == ratio && r.Metrics.Offset == o {
					rates = append(rates, r.Metrics.WinRate)
				}
			}
			if len(rates) == 0 {
				b.WriteString(" --- |")
				continue
			}
			fmt.Fprintf(&b, " %.1f%% |", stats.Mean(rates))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n## 🔍 High-Resolution Observations\n\n")
	b.WriteString("### ⚖️ Group Size Scaling\n")
	b.WriteString("Do small fights (1v1) behave differently than large ones (5v5) at the same ratio?\n\n")
	b.WriteString("| Ratio | PC Size | NPC Size | Avg Win Rate | Avg r |\n")
	b.WriteString("| :---: | :---: | :---: | :---: | :---: |\n")
	for _, ratio := range ratios {
		groups := map[groupSize][]Row{}
		for _, r := range rows {
			if r.Metrics.Ratio == ratio {
				key := groupSize{r.Metrics.PCCount, r.Metrics.NPCCount}
				groups[key] = append(groups[key], r)
			}
		}
		keys := make([]groupSize, 0, len(groups))
		for k := range groups {
			keys = append(keys, k)
		}
		slices.SortFunc(keys, func(a, b groupSize) int {
			return cmp.Or(cmp.Compare(a.pcs, b.pcs), cmp.Compare(a.npcs, b.npcs))
		})
		for _, k := range keys {
			var rates, rs []float64
			for _, r := range groups[k] {
				rates = append(rates, r.Metrics.WinRate)
				if r.Metrics.HasRegression {
					rs = append(rs, r.Metrics.R)
				}
			}
			fmt.Fprintf(&b, "| %.1f:1 | %d | %d | %.1f%% | %.4f |\n", ratio, k.pcs, k.npcs, stats.Mean(rates), stats.Mean(rs))
		}
	}

	b.WriteString("\n## 📋 Raw Data Summary\n")
	b.WriteString("| Scenario ID | Offset | NPC:PC | Win Rate | r | Status | Expectation |\n")
	b.WriteString("| :--- | :---: | :---: | :---: | :---: | :--- | :---: |\n")
	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(a, b Row) int {
		return cmp.Or(cmp.Compare(a.Metrics.Offset, b.Metrics.Offset), cmp.Compare(a.Metrics.Ratio, b.Metrics.Ratio))
	})
	for _, r := range sorted {
		expect := string(r.Status)
		if expect == "" {
			expect = "-"
		}
		fmt.Fprintf(&b, "| `%s` | %+g | %d:%d | %.1f%% | %s | **%s** | %s |\n",
			r.ID, r.Metrics.Offset, r.Metrics.NPCCount, r.Metrics.PCCount, r.Metrics.WinRate, r.R(), r.Label, expect)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func uniqueSorted(rows []Row, key func(Row) float64) []float64 {
	seen := map[float64]struct{}{}
	for _, r := range rows {
		seen[key(r)] = struct{}{}
	}
	return stats.SortedKeys(seen)
}
