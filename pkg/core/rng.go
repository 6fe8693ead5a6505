package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	pcg *rand.PCG
	r   *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	pcg := rand.NewPCG(uint64(seed), 0)
	return &RNG{pcg: pcg, r: rand.New(pcg)}
}

// Reseed rewinds the generator to the stream for seed. The *rand.Rand returned
// by Source stays valid and follows the new stream.
func (r *RNG) Reseed(seed int64) {
	r.pcg.Seed(uint64(seed), 0)
}

// Source exposes the underlying rand.Rand; rewrite programs thread it through
// every tick.
func (r *RNG) Source() *rand.Rand { return r.r }

// Seeds derives n child seeds from base, e.g. for sweeping a program over
// independent runs.
func Seeds(base int64, n int) []int64 {
	if n <= 0 {
		return nil
	}
	r := NewRNG(base).Source()
	out := make([]int64, n)
	for i := range out {
		out[i] = r.Int64()
	}
	return out
}
