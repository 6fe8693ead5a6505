package backtracker

import (
	"strconv"

	"github.com/marceline-cramer/crabby-markov/internal/core"
	"github.com/marceline-cramer/crabby-markov/internal/markov"
	"github.com/marceline-cramer/crabby-markov/internal/sims/program"
)

// Name is the registry key of the preset.
const Name = "backtracker"

// Config controls the maze backtracker.
type Config struct {
	program.Config

	// StartX and StartY place the red head before the first tick.
	StartX int
	StartY int
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Config: program.Config{Width: 16, Height: 16, Seed: 1},
		StartX: 2,
		StartY: 3,
	}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	c.Config = program.FromMap(c.Config, cfg)
	if cfg == nil {
		return c
	}
	if v, ok := cfg["start_x"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.StartX = parsed
		}
	}
	if v, ok := cfg["start_y"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.StartY = parsed
		}
	}
	return c
}

// Program carves a maze with a randomized depth-first walk. The red head
// advances two cells at a time over black, leaving a green trail, and when
// stuck retreats along the trail, turning it white.
func Program() markov.Node {
	return markov.Markov(
		markov.One(markov.Symmetric(markov.MustRule("RBB", "GGR"))...),
		markov.One(markov.Symmetric(markov.MustRule("RGG", "WWR"))...),
	)
}

// New returns a backtracker sim.
func New(cfg Config) *program.Sim {
	return program.New(Name, cfg.Config, Program(), func(g *markov.Grid) {
		start := core.Point{X: min(cfg.StartX, g.W-1), Y: min(cfg.StartY, g.H-1)}
		g.Set(start, markov.Red)
	})
}

func init() {
	core.Register(Name, func(cfg map[string]string) core.Sim {
		return New(FromMap(cfg))
	})
}
