package pong

import "math/rand"

// Rand is the randomness source for serve directions. *rand.Rand satisfies it.
// It is the only source of non-determinism in a match.
type Rand interface {
	Float64() float64
}

// NewRand returns a seeded source suitable for NewMatch.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// serveSlope draws the vertical serve component in [-1, 1).
func serveSlope(r Rand) float64 {
	return 2*r.Float64() - 1
}
