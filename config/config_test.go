package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	if cfg.Grid.Size != 200 {
		t.Errorf("grid.size = %d, want 200", cfg.Grid.Size)
	}
	if cfg.Resource.GrassRate != 0.06 {
		t.Errorf("resource.grass_rate = %v, want 0.06", cfg.Resource.GrassRate)
	}

	rabbit, ok := cfg.SpeciesFor(KindPrey)
	if !ok {
		t.Fatal("expected a prey species in defaults")
	}
	if rabbit.Initial != 100 || rabbit.MaxOffspring != 2 || rabbit.StarvationThreshold != 1 {
		t.Errorf("unexpected prey defaults: %+v", rabbit)
	}
	if _, ok := cfg.SpeciesFor(KindPredator); !ok {
		t.Error("expected a predator species in defaults")
	}
}

func TestLoadOverridesOnlyPresentFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("grid:\n  size: 5\nresource:\n  grass_rate: 1.0\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Grid.Size != 5 {
		t.Errorf("grid.size = %d, want 5", cfg.Grid.Size)
	}
	if cfg.Resource.GrassRate != 1.0 {
		t.Errorf("grass_rate = %v, want 1.0", cfg.Resource.GrassRate)
	}
	// Untouched fields keep their defaults
	if cfg.Telemetry.StatsWindow != 10 {
		t.Errorf("stats_window = %d, want default 10", cfg.Telemetry.StatsWindow)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero grid", func(c *Config) { c.Grid.Size = 0 }},
		{"negative grid", func(c *Config) { c.Grid.Size = -3 }},
		{"grass rate above one", func(c *Config) { c.Resource.GrassRate = 1.5 }},
		{"negative grass rate", func(c *Config) { c.Resource.GrassRate = -0.1 }},
		{"NaN grass rate", func(c *Config) { c.Resource.GrassRate = math.NaN() }},
		{"unknown tie break", func(c *Config) { c.Resource.TieBreak = "coin" }},
		{"no species", func(c *Config) { c.Species = nil }},
		{"negative starvation", func(c *Config) { c.Species[0].StarvationThreshold = -1 }},
		{"negative reproduction", func(c *Config) { c.Species[0].ReproductionThreshold = -1 }},
		{"negative offspring", func(c *Config) { c.Species[0].MaxOffspring = -2 }},
		{"unknown diet", func(c *Config) { c.Species[0].Diet = "carrots" }},
		{"prey eating prey", func(c *Config) { c.Species[0].Diet = DietPrey }},
		{"duplicate kind", func(c *Config) { c.Species[1].Kind = c.Species[0].Kind }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Defaults()
			if err != nil {
				t.Fatal(err)
			}
			tt.mutate(cfg)
			err = cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg, err := Defaults()
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	cfg, err := Defaults()
	if err != nil {
		t.Fatal(err)
	}
	clone := cfg.Clone()
	clone.Species[0].MaxOffspring = 9

	if cfg.Species[0].MaxOffspring == 9 {
		t.Error("mutating clone species leaked into original")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Defaults()
	if err != nil {
		t.Fatal(err)
	}
	cfg.Grid.Size = 42

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Grid.Size != 42 {
		t.Errorf("grid.size = %d after round trip, want 42", loaded.Grid.Size)
	}
}
