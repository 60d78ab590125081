package systems

import (
	"math/rand"
	"testing"
)

func TestGrassFieldCreation(t *testing.T) {
	gf := NewGrassField(4, 1)

	if gf.Size != 4 || len(gf.Res) != 16 {
		t.Fatalf("expected 4x4 field, got size=%d len=%d", gf.Size, len(gf.Res))
	}
	if gf.Total() != 16 {
		t.Errorf("expected fully grown field, total=%d", gf.Total())
	}
	if gf.Cover() != 1 {
		t.Errorf("cover = %v, want 1", gf.Cover())
	}
}

func TestGrassFieldGraze(t *testing.T) {
	gf := NewGrassField(3, 1)

	if got := gf.Graze(1, 2); got != 1 {
		t.Errorf("first graze = %d, want 1", got)
	}
	if got := gf.Graze(1, 2); got != 0 {
		t.Errorf("second graze = %d, want 0", got)
	}
	if gf.At(1, 2) != 0 {
		t.Error("grazed cell should be barren")
	}
	if gf.At(2, 1) != 1 {
		t.Error("graze must only touch its own cell")
	}
}

func TestRegrowMonotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	gf := NewGrassField(20, 0)
	for i := range gf.Res {
		gf.Res[i] = rng.Intn(3) // include amounts above 1
	}

	for gen := 0; gen < 50; gen++ {
		before := gf.Clone()
		gf.Regrow(0.3, rng)
		for i := range gf.Res {
			if gf.Res[i] < before.Res[i] {
				t.Fatalf("cell %d shrank from %d to %d", i, before.Res[i], gf.Res[i])
			}
		}
	}
}

func TestRegrowRates(t *testing.T) {
	tests := []struct {
		name     string
		rate     float64
		wantFull bool
	}{
		{"rate one regrows everything", 1.0, true},
		{"rate zero regrows nothing", 0.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gf := NewGrassField(5, 0)
			gf.Regrow(tt.rate, rand.New(rand.NewSource(3)))

			full := gf.Total() == 25
			empty := gf.Total() == 0
			if tt.wantFull && !full {
				t.Errorf("expected full field, total=%d", gf.Total())
			}
			if !tt.wantFull && !empty {
				t.Errorf("expected empty field, total=%d", gf.Total())
			}
		})
	}
}

func TestRegrowIsPerCell(t *testing.T) {
	gf := NewGrassField(2, 0)
	// Only the second and fourth draws succeed against rate 0.5
	grown := gf.Regrow(0.5, &scriptedRNG{floats: []float64{0.9, 0.1, 0.7, 0.2}})

	if grown != 2 {
		t.Errorf("grown = %d, want 2", grown)
	}
	want := []int{0, 1, 0, 1}
	for i, v := range want {
		if gf.Res[i] != v {
			t.Errorf("Res[%d] = %d, want %d", i, gf.Res[i], v)
		}
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	gf := NewGrassField(3, 1)
	snap := gf.Snapshot()
	snap[0][0] = 0

	if gf.At(0, 0) != 1 {
		t.Error("mutating snapshot changed the field")
	}
	gf.Set(2, 1, 0)
	if snap[1][2] != 1 {
		t.Error("snapshot should not follow later field changes")
	}
}
