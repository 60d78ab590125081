package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/warren/config"
)

func TestDefaultVectorMatchesDefaults(t *testing.T) {
	cfg, err := config.Defaults()
	if err != nil {
		t.Fatal(err)
	}
	pv := NewParamVector()

	got := pv.ExtractFromConfig(cfg)
	want := pv.DefaultVector()
	for i, spec := range pv.Specs {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("%s: defaults.yaml has %v, param default %v", spec.Name, got[i], want[i])
		}
	}
}

func TestNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-9 {
			t.Errorf("%s: %v -> %v", pv.Specs[i].Name, raw[i], back[i])
		}
	}
}

func TestClampRoundsIntegers(t *testing.T) {
	pv := NewParamVector()
	v := pv.DefaultVector()
	v[0] = 5     // grass_rate above max
	v[1] = -3    // prey_initial below min
	v[2] = 2.6   // prey_max_offspring
	v[8] = 61.49 // pred_hunger_tolerance

	c := pv.Clamp(v)
	if c[0] != pv.Specs[0].Max {
		t.Errorf("grass_rate = %v, want %v", c[0], pv.Specs[0].Max)
	}
	if c[1] != pv.Specs[1].Min {
		t.Errorf("prey_initial = %v, want %v", c[1], pv.Specs[1].Min)
	}
	if c[2] != 3 {
		t.Errorf("prey_max_offspring = %v, want 3", c[2])
	}
	if c[8] != 61 {
		t.Errorf("pred_hunger_tolerance = %v, want 61", c[8])
	}
}

func TestApplyToConfig(t *testing.T) {
	cfg, err := config.Defaults()
	if err != nil {
		t.Fatal(err)
	}
	pv := NewParamVector()
	v := pv.DefaultVector()
	v[0] = 0.2
	v[5] = 3 // pred_max_offspring

	pv.ApplyToConfig(cfg, v)

	if cfg.Resource.GrassRate != 0.2 {
		t.Errorf("grass_rate = %v, want 0.2", cfg.Resource.GrassRate)
	}
	fox, ok := cfg.SpeciesFor(config.KindPredator)
	if !ok {
		t.Fatal("no predator species in defaults")
	}
	if fox.MaxOffspring != 3 {
		t.Errorf("predator max_offspring = %d, want 3", fox.MaxOffspring)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("applied config invalid: %v", err)
	}
}

func TestEvaluateBoundedByMaxGens(t *testing.T) {
	cfg, err := config.Defaults()
	if err != nil {
		t.Fatal(err)
	}
	cfg.Grid.Size = 20

	const maxGens = 15
	pv := NewParamVector()
	fe := NewFitnessEvaluator(pv, maxGens, []int64{1, 2}, cfg)

	fitness := fe.Evaluate(pv.DefaultVector())
	if fitness > 0 || fitness < -maxGens {
		t.Errorf("fitness = %v, want in [-%d, 0]", fitness, maxGens)
	}
	if q := fe.LastQuality(); q < 0 || q > 1 {
		t.Errorf("quality = %v, want in [0,1]", q)
	}
}
