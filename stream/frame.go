// Package stream broadcasts simulation frames to websocket clients.
package stream

import (
	"github.com/pthm-cable/warren/components"
	"github.com/pthm-cable/warren/game"
)

// Hello is the first message a client receives.
type Hello struct {
	Type string `json:"type"` // always "config"
	Size int    `json:"size"`
}

// Frame is the state of the simulation after one generation.
type Frame struct {
	Type       string           `json:"type"` // always "frame"
	Generation int32            `json:"generation"`
	Prey       int              `json:"prey"`
	Predators  int              `json:"predators"`
	GrassCover float64          `json:"grass_cover"`
	Resources  []int            `json:"resources"` // row-major, index y*size+x
	Agents     []game.AgentView `json:"agents"`
}

// NewFrame copies the current state of g. The frame shares nothing with
// the game, so it can be handed to another goroutine.
func NewFrame(g *game.Game) Frame {
	size := g.Size()
	res := make([]int, 0, size*size)
	for _, row := range g.Resources() {
		res = append(res, row...)
	}
	return Frame{
		Type:       "frame",
		Generation: g.Generation(),
		Prey:       g.Count(components.KindPrey),
		Predators:  g.Count(components.KindPredator),
		GrassCover: g.GrassCover(),
		Resources:  res,
		Agents:     g.Population(),
	}
}
