// Package rng provides the seedable random source used by RANDOM
// expressions and CHANCE statements.
package rng

import "math/rand/v2"

// Source draws integers in an inclusive range. CHANCE and RANDOM both
// go through this interface rather than touching math/rand directly,
// so interpreter tests can swap in a deterministic source.
type Source interface {
	NextIntInclusive(min, max int) int
}

// pcgSource wraps a PCG-backed *rand.Rand.
type pcgSource struct {
	r *rand.Rand
}

// New builds a Source seeded from two 64-bit seed words.
func New(seed1, seed2 uint64) Source {
	return &pcgSource{r: rand.New(rand.NewPCG(seed1, seed2))}
}

// NextIntInclusive returns an integer n with min <= n <= max. If
// max < min the arguments are swapped.
func (s *pcgSource) NextIntInclusive(min, max int) int {
	if max < min {
		min, max = max, min
	}
	span := max - min + 1
	return min + int(s.r.Int64N(int64(span)))
}
