// Package telemetry collects per-day world aggregates for charting,
// logging and export.
package telemetry

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DayStats holds the world-level aggregates for one completed day.
type DayStats struct {
	Day int `csv:"day" json:"day"`

	ErbastPopulation int `csv:"erbast_population" json:"erbast_population"`
	CarvizPopulation int `csv:"carviz_population" json:"carviz_population"`

	ErbastEnergy int `csv:"erbast_energy" json:"erbast_energy"`
	CarvizEnergy int `csv:"carviz_energy" json:"carviz_energy"`

	ErbastMeanLifetime float64 `csv:"erbast_mean_lifetime" json:"erbast_mean_lifetime"`
	ErbastMeanAge      float64 `csv:"erbast_mean_age" json:"erbast_mean_age"`
	ErbastMeanAttitude float64 `csv:"erbast_mean_attitude" json:"erbast_mean_attitude"`

	CarvizMeanLifetime float64 `csv:"carviz_mean_lifetime" json:"carviz_mean_lifetime"`
	CarvizMeanAge      float64 `csv:"carviz_mean_age" json:"carviz_mean_age"`
	CarvizMeanAttitude float64 `csv:"carviz_mean_attitude" json:"carviz_mean_attitude"`

	VegetobMean float64 `csv:"vegetob_mean" json:"vegetob_mean"`

	// Distribution of ground-cell vegetation density for the histogram
	// chart. Not exported to CSV.
	VegetobHistogram []int `csv:"-" json:"vegetob_histogram"`
}

// Series is the ordered-by-day sequence of world aggregates.
type Series struct {
	days []DayStats
}

// Append records the aggregates of a completed day.
func (s *Series) Append(d DayStats) {
	s.days = append(s.days, d)
}

// All returns a copy of the recorded days in order.
func (s *Series) All() []DayStats {
	out := make([]DayStats, len(s.days))
	copy(out, s.days)
	return out
}

// Len returns the number of recorded days.
func (s *Series) Len() int {
	return len(s.days)
}

// Latest returns the most recent day's aggregates, or false when nothing
// has been recorded yet.
func (s *Series) Latest() (DayStats, bool) {
	if len(s.days) == 0 {
		return DayStats{}, false
	}
	return s.days[len(s.days)-1], true
}

// Mean returns the arithmetic mean of xs, or 0 for an empty slice so that
// extinct populations chart as zero rather than dividing by zero.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

// VegetobHistogram bins ground-cell density values into bins equal-width
// buckets over [0, max].
func VegetobHistogram(values []int, bins, max int) []int {
	counts := make([]int, bins)
	if len(values) == 0 || bins <= 0 {
		return counts
	}

	xs := make([]float64, len(values))
	for i, v := range values {
		xs[i] = float64(v)
	}
	sort.Float64s(xs)

	dividers := make([]float64, bins+1)
	floats.Span(dividers, 0, float64(max)+1)
	hist := stat.Histogram(nil, dividers, xs, nil)
	for i, c := range hist {
		counts[i] = int(c)
	}
	return counts
}
