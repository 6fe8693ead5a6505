package flood

import (
	"strconv"

	"github.com/marceline-cramer/crabby-markov/internal/core"
	"github.com/marceline-cramer/crabby-markov/internal/markov"
	"github.com/marceline-cramer/crabby-markov/internal/sims/program"
)

// Name is the registry key of the preset.
const Name = "flood"

// Config controls the flood preset.
type Config struct {
	program.Config

	// Sources is the number of red and of blue sources.
	Sources int
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{Config: program.Config{Width: 96, Height: 96, Seed: 1}, Sources: 4}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	c.Config = program.FromMap(c.Config, cfg)
	if v, ok := cfg["sources"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Sources = parsed
		}
	}
	return c
}

// Program drops red and blue sources and floods outwards from all of them at
// once. Fronts racing for the same cell overwrite each other in random order.
// Where the two colors meet, the blue side of the border turns white.
func Program(sources int) markov.Node {
	return markov.Sequence(
		markov.One(markov.MustRule("B", "R")).Limit(sources),
		markov.One(markov.MustRule("B", "U")).Limit(sources),
		markov.Prl(markov.Symmetric(
			markov.MustRule("RB", "RR"),
			markov.MustRule("UB", "UU"),
		)...),
		markov.All(markov.Symmetric(markov.MustRule("RU", "*W"))...),
	)
}

// New returns a flood sim.
func New(cfg Config) *program.Sim {
	return program.New(Name, cfg.Config, Program(cfg.Sources), nil)
}

func init() {
	core.Register(Name, func(cfg map[string]string) core.Sim {
		return New(FromMap(cfg))
	})
}
