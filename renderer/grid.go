// Package renderer draws the simulation grid with raylib.
package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/warren/components"
	"github.com/pthm-cable/warren/game"
)

// Palette maps cell contents to colours.
type Palette struct {
	Empty    color.RGBA
	Grass    color.RGBA
	Prey     color.RGBA
	Predator color.RGBA
}

// DefaultPalette is black ground, green grass, white rabbits and red foxes.
func DefaultPalette() Palette {
	return Palette{
		Empty:    color.RGBA{R: 0, G: 0, B: 0, A: 255},
		Grass:    color.RGBA{R: 0, G: 160, B: 0, A: 255},
		Prey:     color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Predator: color.RGBA{R: 220, G: 30, B: 30, A: 255},
	}
}

// Compose fills pixels (row-major, size*size) from the grass layer and the
// agents. A predator hides prey on its cell and prey hide grass.
func (p Palette) Compose(pixels []color.RGBA, resources [][]int, agents []game.AgentView) {
	size := len(resources)
	for y, row := range resources {
		for x, v := range row {
			if v > 0 {
				pixels[y*size+x] = p.Grass
			} else {
				pixels[y*size+x] = p.Empty
			}
		}
	}
	for _, a := range agents {
		if a.Kind == components.KindPrey {
			pixels[a.Y*size+a.X] = p.Prey
		}
	}
	for _, a := range agents {
		if a.Kind == components.KindPredator {
			pixels[a.Y*size+a.X] = p.Predator
		}
	}
}

// GridRenderer uploads the grid as a texture, one texel per cell, and draws
// it scaled with point filtering.
type GridRenderer struct {
	Palette Palette

	tex         rl.Texture2D
	size        int
	pixels      []color.RGBA
	initialized bool
}

// NewGridRenderer creates a renderer for a size x size grid.
func NewGridRenderer(size int) *GridRenderer {
	return &GridRenderer{
		Palette: DefaultPalette(),
		size:    size,
		pixels:  make([]color.RGBA, size*size),
	}
}

// Init creates the texture (must be called after the raylib window is created).
func (r *GridRenderer) Init() {
	if r.initialized {
		return
	}
	img := rl.GenImageColor(r.size, r.size, rl.Black)
	r.tex = rl.LoadTextureFromImage(img)
	rl.SetTextureFilter(r.tex, rl.FilterPoint)
	rl.UnloadImage(img)
	r.initialized = true
}

// Update recomposes the pixels from the game state and uploads them.
func (r *GridRenderer) Update(g *game.Game) {
	if !r.initialized {
		r.Init()
	}
	r.Palette.Compose(r.pixels, g.Resources(), g.Population())
	rl.UpdateTexture(r.tex, r.pixels)
}

// Draw renders the grid at (x, y) with cellPixels screen pixels per cell.
func (r *GridRenderer) Draw(x, y float32, cellPixels int) {
	if !r.initialized {
		return
	}
	side := float32(r.size * cellPixels)
	src := rl.Rectangle{X: 0, Y: 0, Width: float32(r.size), Height: float32(r.size)}
	dst := rl.Rectangle{X: x, Y: y, Width: side, Height: side}
	rl.DrawTexturePro(r.tex, src, dst, rl.Vector2{}, 0, rl.White)
}

// Unload frees GPU resources.
func (r *GridRenderer) Unload() {
	if !r.initialized {
		return
	}
	rl.UnloadTexture(r.tex)
	r.initialized = false
}
