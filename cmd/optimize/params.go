// Package main provides CMA-ES optimization for warren simulation parameters.
package main

import (
	"math"

	"github.com/pthm-cable/warren/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
	Integer bool    // Rounded to the nearest integer before applying

	get func(cfg *config.Config) float64
	set func(cfg *config.Config, v float64)
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// speciesParam builds an integer parameter on the species entry of one kind.
// Configs without that kind leave the value untouched.
func speciesParam(name, kind, field string, lo, hi, def float64, ptr func(sp *config.SpeciesConfig) *int) ParamSpec {
	return ParamSpec{
		Name:    name,
		Path:    "species[" + kind + "]." + field,
		Min:     lo,
		Max:     hi,
		Default: def,
		Integer: true,
		get: func(cfg *config.Config) float64 {
			idx, ok := cfg.Derived.SpeciesIndex[kind]
			if !ok {
				return def
			}
			return float64(*ptr(&cfg.Species[idx]))
		},
		set: func(cfg *config.Config, v float64) {
			idx, ok := cfg.Derived.SpeciesIndex[kind]
			if !ok {
				return
			}
			*ptr(&cfg.Species[idx]) = int(math.Round(v))
		},
	}
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{
				Name: "grass_rate", Path: "resource.grass_rate", Min: 0.01, Max: 0.30, Default: 0.06,
				get: func(cfg *config.Config) float64 { return cfg.Resource.GrassRate },
				set: func(cfg *config.Config, v float64) { cfg.Resource.GrassRate = v },
			},
			// Prey
			speciesParam("prey_initial", config.KindPrey, "initial", 20, 400, 100,
				func(sp *config.SpeciesConfig) *int { return &sp.Initial }),
			speciesParam("prey_max_offspring", config.KindPrey, "max_offspring", 1, 4, 2,
				func(sp *config.SpeciesConfig) *int { return &sp.MaxOffspring }),
			speciesParam("prey_repro_thresh", config.KindPrey, "reproduction_threshold", 1, 3, 1,
				func(sp *config.SpeciesConfig) *int { return &sp.ReproductionThreshold }),
			// Predator
			speciesParam("pred_initial", config.KindPredator, "initial", 2, 60, 10,
				func(sp *config.SpeciesConfig) *int { return &sp.Initial }),
			speciesParam("pred_max_offspring", config.KindPredator, "max_offspring", 1, 3, 1,
				func(sp *config.SpeciesConfig) *int { return &sp.MaxOffspring }),
			speciesParam("pred_starve_thresh", config.KindPredator, "starvation_threshold", 1, 3, 1,
				func(sp *config.SpeciesConfig) *int { return &sp.StarvationThreshold }),
			speciesParam("pred_repro_thresh", config.KindPredator, "reproduction_threshold", 1, 5, 2,
				func(sp *config.SpeciesConfig) *int { return &sp.ReproductionThreshold }),
			speciesParam("pred_hunger_tolerance", config.KindPredator, "hunger_tolerance", 0, 120, 60,
				func(sp *config.SpeciesConfig) *int { return &sp.HungerTolerance }),
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

// Clamp ensures all values are within bounds. Integer parameters are rounded.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := min(spec.Max, max(spec.Min, v[i]))
		if spec.Integer {
			val = math.Round(val)
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)
	for i, spec := range pv.Specs {
		spec.set(cfg, clamped[i])
	}
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		out[i] = spec.get(cfg)
	}
	return out
}
