// Package telemetry records per-second population statistics and exports
// them to CSV and SQLite.
package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// SecondStats holds the population means for one simulated second.
type SecondStats struct {
	Second    int    `csv:"second" db:"second"`
	Tick      uint64 `csv:"tick" db:"tick"`
	Creatures int    `csv:"creatures" db:"creatures"`

	// Means over all creatures alive at the sample
	AvgSpeed  float64 `csv:"avg_speed" db:"avg_speed"`
	AvgSize   float64 `csv:"avg_size" db:"avg_size"`
	AvgEnergy float64 `csv:"avg_energy" db:"avg_energy"`
	AvgHunger float64 `csv:"avg_hunger" db:"avg_hunger"`
	AvgThirst float64 `csv:"avg_thirst" db:"avg_thirst"`

	// Spread of the life-critical vitals
	HungerStd float64 `csv:"hunger_std" db:"hunger_std"`
	HungerP10 float64 `csv:"hunger_p10" db:"hunger_p10"`
	ThirstStd float64 `csv:"thirst_std" db:"thirst_std"`
	ThirstP10 float64 `csv:"thirst_p10" db:"thirst_p10"`

	// Resource state and behavior outcomes during the second
	Berries       int `csv:"berries" db:"berries"`
	Drinks        int `csv:"drinks" db:"drinks"`
	Meals         int `csv:"meals" db:"meals"`
	FailedMeals   int `csv:"failed_meals" db:"failed_meals"`
	ClaimsRefused int `csv:"claims_refused" db:"claims_refused"`
}

// Spread returns the mean, population standard deviation and 10th
// percentile of values. All three are 0 for an empty slice.
func Spread(values []float64) (mean, std, p10 float64) {
	if len(values) == 0 {
		return 0, 0, 0
	}
	mean, std = stat.PopMeanStdDev(values, nil)

	sorted := slices.Clone(values)
	slices.Sort(sorted)
	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	return mean, std, p10
}

// LogValue implements slog.LogValuer for structured logging.
func (s SecondStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("second", s.Second),
		slog.Uint64("tick", s.Tick),
		slog.Int("creatures", s.Creatures),
		slog.Float64("avg_speed", s.AvgSpeed),
		slog.Float64("avg_size", s.AvgSize),
		slog.Float64("avg_energy", s.AvgEnergy),
		slog.Float64("avg_hunger", s.AvgHunger),
		slog.Float64("avg_thirst", s.AvgThirst),
		slog.Float64("hunger_p10", s.HungerP10),
		slog.Float64("thirst_p10", s.ThirstP10),
		slog.Int("berries", s.Berries),
		slog.Int("drinks", s.Drinks),
		slog.Int("meals", s.Meals),
		slog.Int("failed_meals", s.FailedMeals),
		slog.Int("claims_refused", s.ClaimsRefused),
	)
}

// LogStats logs the second's stats using slog.
func (s SecondStats) LogStats() {
	slog.Info("stats",
		"second", s.Second,
		"tick", s.Tick,
		"creatures", s.Creatures,
		"avg_energy", s.AvgEnergy,
		"avg_hunger", s.AvgHunger,
		"avg_thirst", s.AvgThirst,
		"thirst_p10", s.ThirstP10,
		"berries", s.Berries,
		"drinks", s.Drinks,
		"meals", s.Meals,
		"failed_meals", s.FailedMeals,
		"claims_refused", s.ClaimsRefused,
	)
}
