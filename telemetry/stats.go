package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of generations.
type WindowStats struct {
	WindowStartGen int32 `csv:"-"`
	WindowEndGen   int32 `csv:"generation"`

	// Population counts at window end
	PreyCount int `csv:"prey"`
	PredCount int `csv:"pred"`

	// Events during window
	PreyBirths  int `csv:"prey_births"`
	PredBirths  int `csv:"pred_births"`
	PreyStarved int `csv:"prey_starved"`
	PredStarved int `csv:"pred_starved"`
	PreyEaten   int `csv:"prey_eaten"`

	// Grass layer
	GrassEaten   int     `csv:"grass_eaten"`
	GrassRegrown int     `csv:"grass_regrown"`
	GrassCover   float64 `csv:"grass_cover"`

	// Intake distribution (sampled at window end, before the next move)
	PreyIntakeMean float64 `csv:"prey_intake_mean"`
	PredIntakeMean float64 `csv:"pred_intake_mean"`
	PredIntakeStd  float64 `csv:"pred_intake_std"`
	PredHungerMean float64 `csv:"pred_hunger_mean"`
	PredHungerP90  float64 `csv:"pred_hunger_p90"`

	// Lifespans of agents that died during the window, in generations
	PreyLifespanMean float64 `csv:"prey_lifespan_mean"`
	PredLifespanMean float64 `csv:"pred_lifespan_mean"`
}

// Distribution summarizes a sample.
type Distribution struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// Describe computes mean, standard deviation and empirical quantiles.
// Returns the zero Distribution for an empty sample.
func Describe(values []float64) Distribution {
	n := len(values)
	if n == 0 {
		return Distribution{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	var d Distribution
	if n == 1 {
		d.Mean = sorted[0]
	} else {
		d.Mean, d.Std = stat.MeanStdDev(sorted, nil)
	}
	d.P10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	d.P50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	d.P90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return d
}

// CoefficientOfVariation returns std/mean, or 0 when the mean is zero.
func CoefficientOfVariation(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean, std := stat.MeanStdDev(values, nil)
	if mean == 0 {
		return 0
	}
	return std / mean
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartGen)),
		slog.Int("generation", int(s.WindowEndGen)),
		slog.Int("prey", s.PreyCount),
		slog.Int("pred", s.PredCount),
		slog.Int("prey_births", s.PreyBirths),
		slog.Int("pred_births", s.PredBirths),
		slog.Int("prey_starved", s.PreyStarved),
		slog.Int("pred_starved", s.PredStarved),
		slog.Int("prey_eaten", s.PreyEaten),
		slog.Int("grass_eaten", s.GrassEaten),
		slog.Int("grass_regrown", s.GrassRegrown),
		slog.Float64("grass_cover", s.GrassCover),
		slog.Float64("prey_intake_mean", s.PreyIntakeMean),
		slog.Float64("pred_intake_mean", s.PredIntakeMean),
		slog.Float64("pred_intake_std", s.PredIntakeStd),
		slog.Float64("pred_hunger_mean", s.PredHungerMean),
		slog.Float64("pred_hunger_p90", s.PredHungerP90),
		slog.Float64("prey_lifespan_mean", s.PreyLifespanMean),
		slog.Float64("pred_lifespan_mean", s.PredLifespanMean),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
