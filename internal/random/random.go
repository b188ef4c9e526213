// Package random provides the seeded pseudo-random source shared by every
// stochastic decision in a simulation run. All randomness flows through a
// single Source so that a run is fully reproducible from its seed.
package random

import "math/rand/v2"

// Source is the pseudo-random collaborator consumed by the game core.
type Source interface {
	// Shuffle randomizes the order of n elements via the swap function.
	Shuffle(n int, swap func(i, j int))

	// Uniform returns a uniform integer in the closed interval [0, max].
	// max <= 0 returns 0.
	Uniform(max int) int

	// UniformRange returns a uniform integer in the closed interval
	// [-n, n]. n <= 0 returns 0.
	UniformRange(n int) int
}

// PCG is a deterministic Source backed by math/rand/v2's PCG generator.
type PCG struct {
	rng *rand.Rand
}

// NewPCG creates a seeded source. The same seed always yields the same
// stream of draws.
func NewPCG(seed uint64) *PCG {
	return &PCG{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Shuffle randomizes the order of n elements.
func (p *PCG) Shuffle(n int, swap func(i, j int)) {
	p.rng.Shuffle(n, swap)
}

// Uniform returns a uniform integer in [0, max].
func (p *PCG) Uniform(max int) int {
	if max <= 0 {
		return 0
	}
	return p.rng.IntN(max + 1)
}

// UniformRange returns a uniform integer in [-n, n].
func (p *PCG) UniformRange(n int) int {
	if n <= 0 {
		return 0
	}
	return p.rng.IntN(2*n+1) - n
}
