package stats

import (
	"fmt"
	"math"
)

// MinRegressionBattles is the smallest sample analysed.
const MinRegressionBattles = 10

// BattleSample is one battle reduced to what the regression needs.
type BattleSample struct {
	PCWin      bool
	PCMeanRun  float64
	NPCMeanRun float64
}

// Correlation pairs a coefficient with its fitted line.
type Correlation struct {
	R   float64
	Fit Fit
}

// Regression relates run lengths to PC victories.
type Regression struct {
	Battles int
	PC      Correlation
	NPC     Correlation
	// Diff uses PC mean run minus NPC mean run.
	Diff Correlation
}

// Strength grades a correlation.
type Strength int

const (
	Weak Strength = iota
	Moderate
	Strong
)

// Analyze runs the regression. It reports false when there are fewer than
// MinRegressionBattles samples.
func Analyze(samples []BattleSample) (Regression, bool) {
	if len(samples) < MinRegressionBattles {
		return Regression{Battles: len(samples)}, false
	}
	wins := make([]float64, len(samples))
	pc := make([]float64, len(samples))
	npc := make([]float64, len(samples))
	diff := make([]float64, len(samples))
	for i, s := range samples {
		if s.PCWin {
			wins[i] = 1
		}
		pc[i] = s.PCMeanRun
		npc[i] = s.NPCMeanRun
		diff[i] = s.PCMeanRun - s.NPCMeanRun
	}
	correlate := func(x []float64) Correlation {
		return Correlation{R: Pearson(x, wins), Fit: LinearRegression(x, wins)}
	}
	return Regression{
		Battles: len(samples),
		PC:      correlate(pc),
		NPC:     correlate(npc),
		Diff:    correlate(diff),
	}, true
}

// Strength grades the run-difference correlation.
func (r Regression) Strength() Strength {
	switch a := math.Abs(r.Diff.R); {
	case a > 0.3:
		return Strong
	case a > 0.1:
		return Moderate
	default:
		return Weak
	}
}

// Label is a short name for the correlation, such as "Strong positive".
func (r Regression) Label() string {
	direction := "positive"
	if r.Diff.R < 0 {
		direction = "negative"
	}
	switch r.Strength() {
	case Strong:
		return "Strong " + direction
	case Moderate:
		return "Moderate " + direction
	default:
		return "Weak/No significant"
	}
}

// Interpretation explains the label in a sentence.
func (r Regression) Interpretation() string {
	if r.Strength() == Weak {
		return "Weak/No significant correlation - run length difference does not strongly predict winner."
	}
	return fmt.Sprintf("%s correlation between run length difference and PC victory.", r.Label())
}

// Lines renders the regression as report lines.
func (r Regression) Lines() []string {
	block := func(title string, c Correlation, term string) []string {
		return []string{
			"",
			title,
			fmt.Sprintf("  Correlation (r): %+.4f", c.R),
			fmt.Sprintf("  Linear Model:    P(PC Win) = %.4f + %+.4f * %s", c.Fit.Intercept, c.Fit.Slope, term),
		}
	}
	var lines []string
	lines = append(lines, block("PC Mean Run Length vs PC Win:", r.PC, "PC_Mean_Run")...)
	lines = append(lines, block("NPC Mean Run Length vs PC Win:", r.NPC, "NPC_Mean_Run")...)
	lines = append(lines, block("Run Length Difference (PC - NPC) vs PC Win:", r.Diff, "(PC_Run - NPC_Run)")...)
	lines = append(lines, "", "Interpretation:", "  "+r.Interpretation())
	return lines
}
