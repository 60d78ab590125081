package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Kind, diet and tie-break names accepted in YAML.
const (
	KindPrey     = "prey"
	KindPredator = "predator"

	DietGrass = "grass"
	DietPrey  = "prey"

	TieBreakRandom = "random"
	TieBreakFirst  = "first"
)

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	if c.Grid.Size <= 0 {
		return fmt.Errorf("%w: grid.size must be positive, got %d", ErrInvalidConfig, c.Grid.Size)
	}
	// Written so NaN fails too.
	if !(c.Resource.GrassRate >= 0 && c.Resource.GrassRate <= 1) {
		return fmt.Errorf("%w: resource.grass_rate must be in [0,1], got %v", ErrInvalidConfig, c.Resource.GrassRate)
	}
	if c.Resource.InitialAmount < 0 {
		return fmt.Errorf("%w: resource.initial_amount must be non-negative, got %d", ErrInvalidConfig, c.Resource.InitialAmount)
	}
	switch c.Resource.TieBreak {
	case "", TieBreakRandom, TieBreakFirst:
	default:
		return fmt.Errorf("%w: resource.tie_break %q (want %q or %q)", ErrInvalidConfig, c.Resource.TieBreak, TieBreakRandom, TieBreakFirst)
	}
	if c.Population.MaxPerSpecies < 0 {
		return fmt.Errorf("%w: population.max_per_species must be non-negative", ErrInvalidConfig)
	}
	if len(c.Species) == 0 {
		return fmt.Errorf("%w: at least one species is required", ErrInvalidConfig)
	}

	seen := make(map[string]bool, len(c.Species))
	for _, sp := range c.Species {
		if err := sp.validate(); err != nil {
			return err
		}
		if seen[sp.Kind] {
			return fmt.Errorf("%w: species kind %q declared twice", ErrInvalidConfig, sp.Kind)
		}
		seen[sp.Kind] = true
	}
	return nil
}

func (sp SpeciesConfig) validate() error {
	switch sp.Kind {
	case KindPrey, KindPredator:
	default:
		return fmt.Errorf("%w: species %q has unknown kind %q", ErrInvalidConfig, sp.Name, sp.Kind)
	}
	switch sp.Diet {
	case DietGrass, DietPrey:
	default:
		return fmt.Errorf("%w: species %q has unknown diet %q", ErrInvalidConfig, sp.Name, sp.Diet)
	}
	if sp.Kind == KindPrey && sp.Diet == DietPrey {
		return fmt.Errorf("%w: species %q is prey and cannot eat prey", ErrInvalidConfig, sp.Name)
	}

	checks := []struct {
		field string
		value int
	}{
		{"initial", sp.Initial},
		{"max_offspring", sp.MaxOffspring},
		{"starvation_threshold", sp.StarvationThreshold},
		{"reproduction_threshold", sp.ReproductionThreshold},
		{"hunger_tolerance", sp.HungerTolerance},
	}
	for _, ch := range checks {
		if ch.value < 0 {
			return fmt.Errorf("%w: species %q %s must be non-negative, got %d", ErrInvalidConfig, sp.Name, ch.field, ch.value)
		}
	}
	return nil
}
