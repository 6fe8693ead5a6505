package app

import "github.com/marceline-cramer/crabby-markov/internal/core"

type seeded interface {
	Seed() int64
}

// currentSeed returns the seed the sim last reset with, which the HUD may have
// changed behind the game's back, or fallback for sims that do not report it.
func currentSeed(sim core.Sim, fallback int64) int64 {
	if s, ok := sim.(seeded); ok {
		return s.Seed()
	}
	return fallback
}
