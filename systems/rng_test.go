package systems

// scriptedRNG replays fixed draws. Once a script runs out it returns 0.
type scriptedRNG struct {
	ints   []int
	floats []float64
}

func (s *scriptedRNG) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func (s *scriptedRNG) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}
