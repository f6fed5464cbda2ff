// Package telemetry provides population tracking, milestones, and CSV output.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of generations.
type WindowStats struct {
	WindowStart int `csv:"-"`
	WindowEnd   int `csv:"window_end"`

	// Population at window end
	Population int `csv:"population"`

	// Events during window
	Births int `csv:"births"`
	Deaths int `csv:"deaths"`

	// Population distribution over the window's generations
	PopulationMean float64 `csv:"population_mean"`
	PopulationStd  float64 `csv:"population_std"`
	PopulationMin  float64 `csv:"population_min"`
	PopulationMax  float64 `csv:"population_max"`
	PopulationP10  float64 `csv:"population_p10"`
	PopulationP50  float64 `csv:"population_p50"`
	PopulationP90  float64 `csv:"population_p90"`

	// Fraction of the grid alive at window end
	Density float64 `csv:"density"`
}

// PopulationStats summarizes a series of population samples.
type PopulationStats struct {
	Mean, Std     float64
	Min, Max      float64
	P10, P50, P90 float64
}

// ComputePopulationStats calculates mean, sample standard deviation, range,
// and empirical quantiles. Returns zeros for an empty slice.
func ComputePopulationStats(values []float64) PopulationStats {
	n := len(values)
	if n == 0 {
		return PopulationStats{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	var ps PopulationStats
	if n > 1 {
		ps.Mean, ps.Std = stat.MeanStdDev(sorted, nil)
	} else {
		ps.Mean = sorted[0]
	}
	ps.Min = floats.Min(sorted)
	ps.Max = floats.Max(sorted)
	ps.P10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	ps.P50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	ps.P90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return ps
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", s.WindowStart),
		slog.Int("window_end", s.WindowEnd),
		slog.Int("population", s.Population),
		slog.Int("births", s.Births),
		slog.Int("deaths", s.Deaths),
		slog.Float64("population_mean", s.PopulationMean),
		slog.Float64("population_std", s.PopulationStd),
		slog.Float64("population_min", s.PopulationMin),
		slog.Float64("population_max", s.PopulationMax),
		slog.Float64("population_p50", s.PopulationP50),
		slog.Float64("density", s.Density),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEnd,
		"population", s.Population,
		"births", s.Births,
		"deaths", s.Deaths,
		"population_mean", s.PopulationMean,
		"population_std", s.PopulationStd,
		"population_p10", s.PopulationP10,
		"population_p50", s.PopulationP50,
		"population_p90", s.PopulationP90,
		"density", s.Density,
	)
}
