package stats

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"
)

// Summary describes a distribution of run lengths.
type Summary struct {
	N      int
	Mean   float64
	Median float64
	Min    int
	Max    int
	Q1     float64
	Q3     float64
}

// IQR is the interquartile range.
func (s Summary) IQR() float64 {
	return s.Q3 - s.Q1
}

// Summarize computes the summary of data. Empty data yields a zero Summary.
func Summarize(data []int) Summary {
	if len(data) == 0 {
		return Summary{}
	}
	sorted := slices.Clone(data)
	slices.Sort(sorted)

	q := Quartiles(sorted)
	return Summary{
		N:      len(sorted),
		Mean:   Mean(sorted),
		Median: median(sorted),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Q1:     q[0],
		Q3:     q[2],
	}
}

// Mean is the arithmetic mean, zero for no data.
func Mean[T int | float64](data []T) float64 {
	if len(data) == 0 {
		return 0
	}
	var total float64
	for _, v := range data {
		total += float64(v)
	}
	return total / float64(len(data))
}

func median(sorted []int) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return float64(sorted[n/2])
	}
	return float64(sorted[n/2-1]+sorted[n/2]) / 2
}

// Quartiles cuts sorted data into four groups using the exclusive method:
// positions are interpolated on a scale of n+1 and clamped to the data.
func Quartiles(sorted []int) [3]float64 {
	var out [3]float64
	n := len(sorted)
	switch n {
	case 0:
		return out
	case 1:
		v := float64(sorted[0])
		return [3]float64{v, v, v}
	}

	m := n + 1
	for i := 1; i <= 3; i++ {
		j := i * m / 4
		j = max(1, min(j, n-1))
		delta := i*m - j*4
		out[i-1] = (float64(sorted[j-1])*float64(4-delta) + float64(sorted[j])*float64(delta)) / 4
	}
	return out
}

// HistogramBarWidth is the widest bar drawn by Histogram.
const HistogramBarWidth = 40

// Histogram renders one line per run length from 1 to the maximum seen.
func Histogram(name string, data []int) []string {
	if len(data) == 0 {
		return nil
	}
	counts := map[int]int{}
	for _, v := range data {
		counts[v]++
	}
	maxVal := slices.Max(data)
	maxCount := 0
	for _, c := range counts {
		maxCount = max(maxCount, c)
	}

	lines := []string{fmt.Sprintf("--- %s Run Length Histogram ---", name)}
	for length := 1; length <= maxVal; length++ {
		count := counts[length]
		bar := strings.Repeat("█", count*HistogramBarWidth/maxCount)
		pct := float64(count) / float64(len(data)) * 100
		lines = append(lines, fmt.Sprintf("%2d: %-*s (%4d, %5.1f%%)", length, HistogramBarWidth, bar, count, pct))
	}
	return lines
}

// Pearson returns the correlation coefficient of x and y, zero when either
// series has no variance.
func Pearson(x, y []float64) float64 {
	n := min(len(x), len(y))
	if n == 0 {
		return 0
	}
	mx, my := Mean(x[:n]), Mean(y[:n])
	var num, dx, dy float64
	for i := range n {
		a, b := x[i]-mx, y[i]-my
		num += a * b
		dx += a * a
		dy += b * b
	}
	if dx == 0 || dy == 0 {
		return 0
	}
	return num / (math.Sqrt(dx) * math.Sqrt(dy))
}

// Fit is a least-squares line y = Intercept + Slope*x.
type Fit struct {
	Slope     float64
	Intercept float64
}

// LinearRegression fits y against x. A constant x yields a flat line at mean(y).
func LinearRegression(x, y []float64) Fit {
	n := min(len(x), len(y))
	if n == 0 {
		return Fit{}
	}
	mx, my := Mean(x[:n]), Mean(y[:n])
	var num, den float64
	for i := range n {
		num += (x[i] - mx) * (y[i] - my)
		den += (x[i] - mx) * (x[i] - mx)
	}
	if den == 0 {
		return Fit{Intercept: my}
	}
	slope := num / den
	return Fit{Slope: slope, Intercept: my - slope*mx}
}

// SortedKeys returns the map's keys in ascending order.
func SortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
