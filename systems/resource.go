// Package systems provides the per-phase systems of a generation.
package systems

import "math/rand"

// RNG is the interface for random number generation.
// *rand.Rand satisfies it; tests inject scripted sources.
type RNG interface {
	Intn(n int) int
	Float64() float64
}

var _ RNG = (*rand.Rand)(nil)

// Step returns a uniform draw from {-1, 0, +1}.
func Step(rng RNG) int {
	return rng.Intn(3) - 1
}
