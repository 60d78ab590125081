package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// MaxSpeed is the highest generations-per-frame setting.
const MaxSpeed = 20

// ControlsState is what the controls panel reads and edits.
type ControlsState struct {
	Paused    bool
	StepOnce  bool
	Speed     int
	GrassRate float64
}

// ControlsPanel renders pause and step buttons plus grass-rate and speed sliders.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlsPanel creates a controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Draw renders the panel and applies any interaction to s.
func (c *ControlsPanel) Draw(s *ControlsState) {
	x := float32(c.x)
	y := float32(c.y)

	pauseText := "Pause"
	if s.Paused {
		pauseText = "Resume"
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: 80, Height: 24}, pauseText) {
		s.Paused = !s.Paused
	}
	if gui.Button(rl.Rectangle{X: x + 90, Y: y, Width: 80, Height: 24}, "Step") {
		s.Paused = true
		s.StepOnce = true
	}

	sliderX := x + 260
	sliderW := float32(c.width) - 260 - 60

	rl.DrawText("Grass rate", int32(sliderX)-80, int32(y)+2, 14, rl.Gray)
	rate := gui.SliderBar(
		rl.Rectangle{X: sliderX, Y: y, Width: sliderW, Height: 10},
		"", fmt.Sprintf("%.3f", s.GrassRate),
		float32(s.GrassRate), 0, 1,
	)
	if rate != float32(s.GrassRate) {
		s.GrassRate = float64(rate)
	}

	rl.DrawText("Speed", int32(sliderX)-80, int32(y)+16, 14, rl.Gray)
	speed := gui.SliderBar(
		rl.Rectangle{X: sliderX, Y: y + 14, Width: sliderW, Height: 10},
		"", fmt.Sprintf("%dx", s.Speed),
		float32(s.Speed), 1, MaxSpeed,
	)
	s.Speed = max(1, int(speed+0.5))
}
