package main

import (
	"github.com/pthm-cable/meadow/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
	Integer bool    // rounded when applied
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Bushes
			{Name: "bush_regrow_rate", Path: "bush.regrow_rate", Min: 0.02, Max: 1.0, Default: 0.5},
			{Name: "bush_max_berries", Path: "bush.max_berries", Min: 1, Max: 10, Default: 3, Integer: true},
			{Name: "initial_bushes", Path: "population.initial_bushes", Min: 10, Max: 150, Default: 45, Integer: true},
			// Behavior
			{Name: "thirst_threshold", Path: "behavior.thirst_threshold", Min: 10, Max: 90, Default: 70, Integer: true},
			{Name: "hunger_threshold", Path: "behavior.hunger_threshold", Min: 10, Max: 90, Default: 70, Integer: true},
			{Name: "move_away_lengths", Path: "behavior.move_away_lengths", Min: 0.5, Max: 6.0, Default: 3.0},
			// Steering
			{Name: "separation_strength", Path: "steering.separation_strength", Min: 0, Max: 2.0, Default: 0.5},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = max(spec.Min, min(v[i], spec.Max))
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct, in Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	c := pv.Clamp(values)
	round := func(v float64) int { return int(v + 0.5) }

	cfg.Bush.RegrowRate = c[0]
	cfg.Bush.MaxBerries = round(c[1])
	cfg.Bush.Berries = min(cfg.Bush.Berries, cfg.Bush.MaxBerries)
	cfg.Population.InitialBushes = round(c[2])
	cfg.Population.MaxBushes = max(cfg.Population.MaxBushes, cfg.Population.InitialBushes)

	cfg.Behavior.ThirstThreshold = round(c[3])
	cfg.Behavior.HungerThreshold = round(c[4])
	cfg.Behavior.MoveAwayLengths = c[5]

	cfg.Steering.SeparationStrength = c[6]
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Bush.RegrowRate,
		float64(cfg.Bush.MaxBerries),
		float64(cfg.Population.InitialBushes),
		float64(cfg.Behavior.ThirstThreshold),
		float64(cfg.Behavior.HungerThreshold),
		cfg.Behavior.MoveAwayLengths,
		cfg.Steering.SeparationStrength,
	}
}
