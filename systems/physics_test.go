package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/warren/components"
)

func TestMoveWrapsAtEdges(t *testing.T) {
	const size = 5

	tests := []struct {
		name  string
		start components.Position
		draws []int // Intn(3) results: 0 -> -1, 1 -> 0, 2 -> +1
		want  components.Position
	}{
		{"stay", components.Position{X: 2, Y: 2}, []int{1, 1}, components.Position{X: 2, Y: 2}},
		{"left off edge", components.Position{X: 0, Y: 3}, []int{0, 1}, components.Position{X: 4, Y: 3}},
		{"down off edge", components.Position{X: 1, Y: 4}, []int{1, 2}, components.Position{X: 1, Y: 0}},
		{"corner both", components.Position{X: 0, Y: 0}, []int{0, 0}, components.Position{X: 4, Y: 4}},
		{"far corner both", components.Position{X: 4, Y: 4}, []int{2, 2}, components.Position{X: 0, Y: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := tt.start
			org := components.Organism{Intake: 3}
			Move(&pos, &org, size, &scriptedRNG{ints: tt.draws})

			if pos != tt.want {
				t.Errorf("Move from %v = %v, want %v", tt.start, pos, tt.want)
			}
			if org.Intake != 0 {
				t.Errorf("intake = %d after move, want 0", org.Intake)
			}
		})
	}
}

func TestMoveStaysInBounds(t *testing.T) {
	const size = 7
	rng := rand.New(rand.NewSource(1))

	for trial := 0; trial < 2000; trial++ {
		pos := components.Position{X: rng.Intn(size), Y: rng.Intn(size)}
		var org components.Organism
		Move(&pos, &org, size, rng)

		if pos.X < 0 || pos.X >= size || pos.Y < 0 || pos.Y >= size {
			t.Fatalf("position %v out of [0,%d)", pos, size)
		}
	}
}

func TestPhaseOrder(t *testing.T) {
	want := []string{PhaseMove, PhaseEat, PhaseSurvive, PhaseReproduce, PhaseRegrow, PhaseTelemetry}
	got := PhaseIDs()
	if len(got) != len(want) {
		t.Fatalf("PhaseIDs() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("phase %d = %s, want %s", i, got[i], want[i])
		}
	}
	if PhaseName(PhaseEat) != "Eat" || PhaseName("other") != "other" {
		t.Error("PhaseName lookup wrong")
	}
}
