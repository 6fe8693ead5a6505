package growth

import (
	"strconv"

	"github.com/marceline-cramer/crabby-markov/internal/core"
	"github.com/marceline-cramer/crabby-markov/internal/markov"
	"github.com/marceline-cramer/crabby-markov/internal/sims/program"
)

// Name is the registry key of the preset.
const Name = "growth"

// Config controls the growth preset.
type Config struct {
	program.Config

	Seeds int
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{Config: program.Config{Width: 64, Height: 64, Seed: 1}, Seeds: 1}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	c.Config = program.FromMap(c.Config, cfg)
	if v, ok := cfg["seeds"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Seeds = parsed
		}
	}
	return c
}

// Program plants white seeds and grows them one random cell at a time
// (Eden growth) until no black cell is left.
func Program(seeds int) markov.Node {
	return markov.Sequence(
		markov.One(markov.MustRule("B", "W")).Limit(seeds),
		markov.One(markov.Symmetric(markov.MustRule("WB", "WW"))...),
	)
}

// New returns a growth sim.
func New(cfg Config) *program.Sim {
	return program.New(Name, cfg.Config, Program(cfg.Seeds), nil)
}

func init() {
	core.Register(Name, func(cfg map[string]string) core.Sim {
		return New(FromMap(cfg))
	})
}
