package river

import (
	"strconv"

	"github.com/marceline-cramer/crabby-markov/internal/core"
	"github.com/marceline-cramer/crabby-markov/internal/markov"
	"github.com/marceline-cramer/crabby-markov/internal/sims/program"
)

// Name is the registry key of the preset.
const Name = "river"

// Config controls the river generator.
type Config struct {
	program.Config

	// Forests is the number of emerald seeds planted away from the banks.
	Forests int
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Config:  program.Config{Width: 128, Height: 128, Seed: 1},
		Forests: 13,
	}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	c.Config = program.FromMap(c.Config, cfg)
	if cfg == nil {
		return c
	}
	if v, ok := cfg["forests"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Forests = parsed
		}
	}
	return c
}

// Program grows a red and a white region until they meet, turns the seam into
// a blue river, clears everything else, widens the river, lines it with green
// banks and finally grows forests and meadows over the remaining ground.
func Program(forests int) markov.Node {
	return markov.Sequence(
		markov.One(markov.MustRule("B", "W")).Limit(1),
		markov.One(markov.MustRule("B", "R")).Limit(1),
		markov.One(markov.Symmetric(
			markov.MustRule("RB", "RR"),
			markov.MustRule("WB", "WW"),
		)...),
		markov.All(markov.Symmetric(markov.MustRule("RW", "UU"))...),
		markov.All(markov.Symmetric(
			markov.MustRule("W", "B"),
			markov.MustRule("R", "B"),
		)...),
		markov.All(markov.Symmetric(markov.MustRule("UB", "UU"))...).Limit(1),
		markov.All(markov.Symmetric(markov.MustRule("BU/UB", "U*/**"))...),
		markov.All(markov.Symmetric(markov.MustRule("UB", "*G"))...),
		markov.One(markov.MustRule("B", "E")).Limit(forests),
		markov.One(markov.Symmetric(
			markov.MustRule("EB", "*E"),
			markov.MustRule("GB", "*G"),
		)...),
	)
}

// New returns a river sim.
func New(cfg Config) *program.Sim {
	return program.New(Name, cfg.Config, Program(cfg.Forests), nil)
}

func init() {
	core.Register(Name, func(cfg map[string]string) core.Sim {
		return New(FromMap(cfg))
	})
}
