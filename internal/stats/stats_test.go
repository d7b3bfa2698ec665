package stats

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	t.Run("Even sample", func(t *testing.T) {
		s := Summarize([]int{8, 1, 7, 2, 6, 3, 5, 4})
		assert.Equal(t, 8, s.N)
		assert.InDelta(t, 4.5, s.Mean, 1e-9)
		assert.InDelta(t, 4.5, s.Median, 1e-9)
		assert.Equal(t, 1, s.Min)
		assert.Equal(t, 8, s.Max)
		assert.InDelta(t, 2.25, s.Q1, 1e-9)
		assert.InDelta(t, 6.75, s.Q3, 1e-9)
		assert.InDelta(t, 4.5, s.IQR(), 1e-9)
	})

	t.Run("Odd sample", func(t *testing.T) {
		s := Summarize([]int{3, 1, 2})
		assert.InDelta(t, 2.0, s.Median, 1e-9)
		assert.InDelta(t, 1.0, s.Q1, 1e-9)
		assert.InDelta(t, 3.0, s.Q3, 1e-9)
	})

	t.Run("Single value", func(t *testing.T) {
		s := Summarize([]int{4})
		assert.InDelta(t, 0.0, s.IQR(), 1e-9)
		assert.Equal(t, 4, s.Max)
	})

	t.Run("No data", func(t *testing.T) {
		assert.Equal(t, 0, Summarize(nil).N)
	})

	t.Run("Input is not reordered", func(t *testing.T) {
		data := []int{3, 1, 2}
		Summarize(data)
		assert.Equal(t, []int{3, 1, 2}, data)
	})
}

func TestQuartilesClampAtEdges(t *testing.T) {
	q := Quartiles([]int{1, 2})
	assert.InDelta(t, 0.75, q[0], 1e-9)
	assert.InDelta(t, 1.5, q[1], 1e-9)
	assert.InDelta(t, 2.25, q[2], 1e-9)
}

func TestHistogram(t *testing.T) {
	lines := Histogram("Player", []int{1, 1, 2, 4})
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "Player Run Length Histogram")
	assert.True(t, strings.HasPrefix(lines[1], " 1: "+strings.Repeat("█", HistogramBarWidth)))
	assert.Contains(t, lines[1], "(   2,  50.0%)")
	assert.Contains(t, lines[3], "(   0,   0.0%)")
	assert.Nil(t, Histogram("Empty", nil))
}

func TestPearsonAndFit(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	assert.InDelta(t, 1.0, Pearson(x, []float64{2, 4, 6, 8}), 1e-9)
	assert.InDelta(t, -1.0, Pearson(x, []float64{8, 6, 4, 2}), 1e-9)
	assert.Equal(t, 0.0, Pearson(x, []float64{5, 5, 5, 5}))

	fit := LinearRegression(x, []float64{3, 5, 7, 9})
	assert.InDelta(t, 2.0, fit.Slope, 1e-9)
	assert.InDelta(t, 1.0, fit.Intercept, 1e-9)

	flat := LinearRegression([]float64{2, 2, 2}, []float64{1, 0, 1})
	assert.Equal(t, 0.0, flat.Slope)
	assert.InDelta(t, 2.0/3.0, flat.Intercept, 1e-9)
}

func TestAnalyze(t *testing.T) {
	t.Run("Too few battles", func(t *testing.T) {
		_, ok := Analyze(make([]BattleSample, MinRegressionBattles-1))
		assert.False(t, ok)
	})

	t.Run("Longer PC runs predict wins", func(t *testing.T) {
		var samples []BattleSample
		for i := range 20 {
			win := i%2 == 0
			s := BattleSample{PCWin: win, PCMeanRun: 1, NPCMeanRun: 3}
			if win {
				s.PCMeanRun, s.NPCMeanRun = 4, 1
			}
			samples = append(samples, s)
		}
		reg, ok := Analyze(samples)
		require.True(t, ok)
		assert.InDelta(t, 1.0, reg.Diff.R, 1e-9)
		assert.InDelta(t, -1.0, reg.NPC.R, 1e-9)
		assert.Equal(t, Strong, reg.Strength())
		assert.Equal(t, "Strong positive", reg.Label())
		assert.Contains(t, reg.Interpretation(), "PC victory")

		lines := reg.Lines()
		assert.Contains(t, strings.Join(lines, "\n"), "Correlation (r): +1.0000")
	})

	t.Run("Labels follow thresholds", func(t *testing.T) {
		assert.Equal(t, "Moderate negative", Regression{Diff: Correlation{R: -0.2}}.Label())
		assert.Equal(t, "Weak/No significant", Regression{Diff: Correlation{R: 0.1}}.Label())
		assert.Equal(t, Strong, Regression{Diff: Correlation{R: -0.31}}.Strength())
	})
}
