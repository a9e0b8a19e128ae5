package rng

// Scripted replays fixed values, for tests that need an exact outcome.
// Once a script is exhausted Float64 returns 0.99 and IntRange returns lo.
type Scripted struct {
	Floats []float64
	Ints   []int
}

func (s *Scripted) Float64() float64 {
	if len(s.Floats) == 0 {
		return 0.99
	}
	v := s.Floats[0]
	s.Floats = s.Floats[1:]
	return v
}

// IntRange returns the next scripted integer clamped into [lo, hi].
func (s *Scripted) IntRange(lo, hi int) int {
	if len(s.Ints) == 0 {
		return lo
	}
	v := s.Ints[0]
	s.Ints = s.Ints[1:]
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
