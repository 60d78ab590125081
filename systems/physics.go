package systems

import "github.com/pthm-cable/warren/components"

// Move displaces pos by an independent uniform {-1, 0, +1} step on each axis,
// wraps both coordinates onto the torus and clears the intake: each
// generation's foraging starts fresh.
func Move(pos *components.Position, org *components.Organism, size int, rng RNG) {
	pos.X = components.Wrap(pos.X+Step(rng), size)
	pos.Y = components.Wrap(pos.Y+Step(rng), size)
	org.Intake = 0
}
