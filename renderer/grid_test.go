package renderer

import (
	"image/color"
	"testing"

	"github.com/pthm-cable/warren/components"
	"github.com/pthm-cable/warren/game"
)

func TestPaletteCompose(t *testing.T) {
	p := DefaultPalette()

	// 3x3 grid, indexed [y][x].
	resources := [][]int{
		{0, 1, 1},
		{1, 0, 0},
		{0, 1, 0},
	}
	agents := []game.AgentView{
		{ID: 1, X: 2, Y: 0, Kind: components.KindPrey},     // rabbit on grass
		{ID: 2, X: 0, Y: 1, Kind: components.KindPredator}, // fox on grass
		{ID: 3, X: 1, Y: 1, Kind: components.KindPrey},     // rabbit on bare ground
		{ID: 4, X: 2, Y: 1, Kind: components.KindPredator}, // fox after rabbit in order
		{ID: 5, X: 2, Y: 1, Kind: components.KindPrey},     // rabbit after fox in order
		{ID: 6, X: 0, Y: 2, Kind: components.KindPredator}, // fox alone on bare ground
	}

	tests := []struct {
		name string
		x, y int
		want color.RGBA
	}{
		{"empty", 0, 0, p.Empty},
		{"grass", 1, 0, p.Grass},
		{"rabbit hides grass", 2, 0, p.Prey},
		{"fox hides grass", 0, 1, p.Predator},
		{"rabbit on bare", 1, 1, p.Prey},
		{"fox hides rabbit regardless of order", 2, 1, p.Predator},
		{"fox on bare", 0, 2, p.Predator},
		{"grass untouched", 1, 2, p.Grass},
		{"empty corner", 2, 2, p.Empty},
	}

	pixels := make([]color.RGBA, 9)
	for i := range pixels {
		pixels[i] = color.RGBA{R: 1, G: 2, B: 3, A: 4} // stale frame
	}
	p.Compose(pixels, resources, agents)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pixels[tt.y*3+tt.x]; got != tt.want {
				t.Errorf("cell (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}
