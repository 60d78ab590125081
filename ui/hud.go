package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/warren/systems"
	"github.com/pthm-cable/warren/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Generation int32
	Prey       int
	Predators  int
	GrassCover float64
	Speed      int
	FPS        int32
	Paused     bool
}

// Title is the window caption for a generation.
func Title(generation int32, prey, predators int) string {
	return fmt.Sprintf("Generation: %d  Rabbits: %d  Foxes: %d", generation, prey, predators)
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD row starting at y.
func (h *HUD) Draw(y int32, width int32, data HUDData) {
	rl.DrawText(Title(data.Generation, data.Prey, data.Predators), 10, y, 20, rl.White)

	h.renderer.DrawBar(width-340, y+4, "Grass", data.GrassCover, 220)

	status := fmt.Sprintf("%dx | %d fps", data.Speed, data.FPS)
	color := rl.LightGray
	if data.Paused {
		status = "PAUSED"
		color = rl.Yellow
	}
	rl.DrawText(status, width-110, y+4, 14, color)
}

// DrawControls renders the key legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-16, 12, rl.Gray)
}

// PerfPanel renders per-phase timing.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	visible  bool
}

// NewPerfPanel creates a performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// Toggle switches panel visibility.
func (p *PerfPanel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// Draw renders the panel if visible.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	if !p.visible {
		return
	}
	r := p.renderer
	phases := systems.Phases()
	height := int32(len(phases)+2)*r.Theme.LineHeight + r.Theme.Padding*2
	r.DrawPanel(p.x, p.y, 240, height)

	col := r.column(p.x+r.Theme.Padding, p.y+r.Theme.Padding)
	col.header("Generation timing")
	col.pair("Total", fmt.Sprintf("%s  %.0f/s", stats.AvgGen.Round(time.Microsecond), stats.GensPerSec), r.Theme.ValueColor)

	for _, ph := range phases {
		pct := stats.PhasePct[ph.ID]
		color := r.Theme.ValueColor
		if pct > 50 {
			color = rl.Orange
		}
		col.pair(ph.Name, fmt.Sprintf("%8s %5.1f%%", stats.PhaseAvg[ph.ID].Round(time.Microsecond), pct), color)
	}
}
