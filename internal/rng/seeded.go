package rng

import "math/rand"

// Seeded returns a deterministic generator for the given seed.
// Only use this in tests or anywhere else reproducibility beats unpredictability.
func Seeded(seed int64) Generator {
	return &seededGenerator{rand.New(rand.NewSource(seed))}
}

type seededGenerator struct {
	r *rand.Rand
}

func (s *seededGenerator) Intn(n int) int {
	return s.r.Intn(n)
}
