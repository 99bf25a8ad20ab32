package core

import "math/rand/v2"

// RNG wraps a PCG source so that every random decision in a run can be
// replayed from its seed.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Bool returns a random boolean value.
func (r *RNG) Bool() bool {
	return r.r.IntN(2) == 1
}

// IntN returns a random int in [0, n). It returns 0 when n <= 0.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// Percent reports true with probability p/100.
func (r *RNG) Percent(p int) bool {
	switch {
	case p <= 0:
		return false
	case p >= 100:
		return true
	}
	return r.r.IntN(100) < p
}
