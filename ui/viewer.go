package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/warren/components"
	"github.com/pthm-cable/warren/game"
	"github.com/pthm-cable/warren/renderer"
)

// hudHeight is the strip above the grid holding the HUD and the controls.
const hudHeight = 60

// Viewer drives a game from the raylib frame loop.
type Viewer struct {
	game       *game.Game
	grid       *renderer.GridRenderer
	hud        *HUD
	controls   *ControlsPanel
	perf       *PerfPanel
	state      ControlsState
	cellPixels int
	width      int32
	height     int32

	// OnStep is called after every generation.
	OnStep func(*game.Game)
	// Stop, if set, is checked before every generation; once it reports
	// true the frame runs no further generations.
	Stop func(*game.Game) bool
}

// NewViewer creates a viewer (must be called after the raylib window is created).
func NewViewer(g *game.Game, width, height int32, cellPixels int) *Viewer {
	v := &Viewer{
		game:       g,
		grid:       renderer.NewGridRenderer(g.Size()),
		hud:        NewHUD(),
		controls:   NewControlsPanel(10, 32, width-20),
		perf:       NewPerfPanel(width-250, hudHeight+10),
		state:      ControlsState{Speed: 1, GrassRate: g.GrassRate()},
		cellPixels: cellPixels,
		width:      width,
		height:     height,
	}
	v.grid.Init()
	v.grid.Update(g)
	return v
}

// Update handles input and advances the simulation by Speed generations
// unless paused.
func (v *Viewer) Update() {
	v.handleInput()

	if v.state.GrassRate != v.game.GrassRate() {
		v.game.SetGrassRate(v.state.GrassRate)
	}

	steps := 0
	switch {
	case v.state.StepOnce:
		steps = 1
		v.state.StepOnce = false
	case !v.state.Paused:
		steps = v.state.Speed
	}

	if v.game.Advance(steps, v.Stop, v.OnStep) > 0 {
		v.grid.Update(v.game)
		rl.SetWindowTitle(Title(v.game.Generation(), v.game.Count(components.KindPrey), v.game.Count(components.KindPredator)))
	}
}

// handleInput processes keyboard shortcuts.
func (v *Viewer) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		v.state.Paused = !v.state.Paused
	}
	if rl.IsKeyPressed(rl.KeyN) {
		v.state.Paused = true
		v.state.StepOnce = true
	}
	if rl.IsKeyPressed(rl.KeyP) {
		v.perf.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && v.state.Speed < MaxSpeed {
		v.state.Speed++
	}
	if rl.IsKeyPressed(rl.KeyComma) && v.state.Speed > 1 {
		v.state.Speed--
	}
}

// Draw renders one frame.
func (v *Viewer) Draw() {
	v.game.RecordFrame()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 15, G: 15, B: 20, A: 255})

	v.grid.Draw(0, hudHeight, v.cellPixels)

	v.hud.Draw(6, v.width, HUDData{
		Generation: v.game.Generation(),
		Prey:       v.game.Count(components.KindPrey),
		Predators:  v.game.Count(components.KindPredator),
		GrassCover: v.game.GrassCover(),
		Speed:      v.state.Speed,
		FPS:        rl.GetFPS(),
		Paused:     v.state.Paused,
	})
	v.controls.Draw(&v.state)
	v.perf.Draw(v.game.PerfStats())
	v.drawLegend()
	v.hud.DrawControls(v.height, fmt.Sprintf("SPACE pause | N step | , . speed | P perf | seed %d", v.game.Seed()))

	rl.EndDrawing()
}

// drawLegend names the cell colours along the bottom edge.
func (v *Viewer) drawLegend() {
	r := v.hud.renderer
	pal := v.grid.Palette
	x := v.width - 330
	y := v.height - 16
	x = r.DrawSwatch(x, y, pal.Grass, "grass")
	x = r.DrawSwatch(x, y, pal.Prey, "rabbit")
	r.DrawSwatch(x, y, pal.Predator, "fox")
}

// Unload frees GPU resources.
func (v *Viewer) Unload() {
	v.grid.Unload()
}
