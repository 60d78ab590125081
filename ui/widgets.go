package ui

import (
	"fmt"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer draws themed widgets.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel fills a bordered background box.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// column lays out widgets top to bottom starting at (x, y).
type column struct {
	r    *Renderer
	x, y int32
}

func (r *Renderer) column(x, y int32) *column {
	return &column{r: r, x: x, y: y}
}

func (c *column) header(title string) {
	rl.DrawText(title, c.x, c.y, c.r.Theme.HeaderFontSize, c.r.Theme.SectionHeader)
	c.y += c.r.Theme.LineHeight
}

// pair draws "label:" and a value in the value column.
func (c *column) pair(label, value string, valueColor rl.Color) {
	rl.DrawText(label+":", c.x, c.y, c.r.Theme.FontSize, c.r.Theme.LabelColor)
	rl.DrawText(value, c.x+c.r.Theme.LabelWidth, c.y, c.r.Theme.FontSize, valueColor)
	c.y += c.r.Theme.LineHeight
}

// DrawBar draws a labelled fill bar for a fraction in [0, 1].
func (r *Renderer) DrawBar(x, y int32, label string, fraction float64, width int32) {
	fraction = min(1, max(0, fraction))
	trackX := x + r.Theme.LabelWidth
	trackW := width - r.Theme.LabelWidth - 50

	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(trackX, y+2, trackW, r.Theme.BarHeight, r.Theme.BarBg)
	rl.DrawRectangle(trackX, y+2, int32(float64(trackW)*fraction), r.Theme.BarHeight, r.Theme.BarFill)
	rl.DrawText(fmt.Sprintf("%3.0f%%", fraction*100), trackX+trackW+5, y, r.Theme.FontSize, r.Theme.ValueColor)
}

// DrawSwatch draws a colour square followed by its name and returns the x
// position after it.
func (r *Renderer) DrawSwatch(x, y int32, c color.RGBA, name string) int32 {
	size := r.Theme.FontSize
	rl.DrawRectangle(x, y, size, size, c)
	rl.DrawRectangleLines(x, y, size, size, r.Theme.PanelBorder)
	rl.DrawText(name, x+size+4, y, r.Theme.FontSize, r.Theme.LabelColor)
	return x + size + 12 + rl.MeasureText(name, r.Theme.FontSize)
}
