package systems

// GrassField is the toroidal resource layer: an integer amount per cell,
// 0 for barren ground and 1 for grown grass. Stored row-major (y*Size + x).
type GrassField struct {
	Size int
	Res  []int
}

// NewGrassField creates a size x size field with every cell set to initial.
func NewGrassField(size, initial int) *GrassField {
	gf := &GrassField{
		Size: size,
		Res:  make([]int, size*size),
	}
	if initial != 0 {
		for i := range gf.Res {
			gf.Res[i] = initial
		}
	}
	return gf
}

func (gf *GrassField) index(x, y int) int {
	return y*gf.Size + x
}

// At returns the amount at (x, y). Coordinates are expected in range.
func (gf *GrassField) At(x, y int) int {
	return gf.Res[gf.index(x, y)]
}

// Set stores an amount at (x, y).
func (gf *GrassField) Set(x, y, amount int) {
	gf.Res[gf.index(x, y)] = amount
}

// Graze removes all grass at (x, y) and returns how much was there.
func (gf *GrassField) Graze(x, y int) int {
	i := gf.index(x, y)
	amount := gf.Res[i]
	gf.Res[i] = 0
	return amount
}

// Regrow runs an independent Bernoulli(rate) trial per cell and raises
// successful cells to at least 1. Existing grass is never reduced.
// Returns the number of cells that went from barren to grown.
func (gf *GrassField) Regrow(rate float64, rng RNG) int {
	if rate <= 0 {
		return 0
	}
	grown := 0
	for i, v := range gf.Res {
		if rng.Float64() < rate && v < 1 {
			gf.Res[i] = 1
			grown++
		}
	}
	return grown
}

// Total returns the summed amount over all cells.
func (gf *GrassField) Total() int {
	var sum int
	for _, v := range gf.Res {
		sum += v
	}
	return sum
}

// Cover returns the fraction of cells holding grass.
func (gf *GrassField) Cover() float64 {
	if len(gf.Res) == 0 {
		return 0
	}
	var n int
	for _, v := range gf.Res {
		if v > 0 {
			n++
		}
	}
	return float64(n) / float64(len(gf.Res))
}

// Snapshot returns a copy of the layer as rows indexed [y][x].
func (gf *GrassField) Snapshot() [][]int {
	rows := make([][]int, gf.Size)
	for y := range rows {
		rows[y] = make([]int, gf.Size)
		copy(rows[y], gf.Res[y*gf.Size:(y+1)*gf.Size])
	}
	return rows
}

// Clone returns an independent copy of the field.
func (gf *GrassField) Clone() *GrassField {
	out := &GrassField{Size: gf.Size, Res: make([]int, len(gf.Res))}
	copy(out.Res, gf.Res)
	return out
}
