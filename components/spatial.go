package components

// Position is a cell coordinate on the toroidal grid, always in [0, size).
type Position struct {
	X, Y int
}

// Wrap returns v modulo size in [0, size); Go's % can return negative.
func Wrap(v, size int) int {
	v %= size
	if v < 0 {
		v += size
	}
	return v
}
