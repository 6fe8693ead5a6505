package program

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"strconv"

	"github.com/marceline-cramer/crabby-markov/internal/core"
	"github.com/marceline-cramer/crabby-markov/internal/markov"
	rngcore "github.com/marceline-cramer/crabby-markov/pkg/core"
)

// Config holds the dimensions and default seed shared by every program.
type Config struct {
	Width  int
	Height int
	// Seed is the default seed. Reset(0) selects it, so a run on seed 0 is
	// reached by setting Seed to 0 rather than by passing 0 to Reset.
	Seed int64
}

// FromMap overrides the fields of base with the "w", "h" and "seed" keys of a
// flag-style string map.
func FromMap(base Config, cfg map[string]string) Config {
	c := base
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	return c
}

// SetupFunc prepares a freshly allocated grid before the first tick.
type SetupFunc func(g *markov.Grid)

// Sim drives a rewrite program against a grid and satisfies core.Sim.
type Sim struct {
	name  string
	cfg   Config
	node  markov.Node
	setup SetupFunc

	// invalid holds the Validate error of node; such a sim never ticks.
	invalid error

	grid  *markov.Grid
	state markov.State
	rng   *rngcore.RNG
	seed  int64

	ticks int
	done  bool
	err   error

	display []uint8
}

// New returns a Sim running node on a grid prepared by setup, which may be
// nil. The sim is reset with the configured seed. A program that fails
// markov.Validate is rejected up front: the sim starts out done, Err reports
// the problem and Step never touches the grid.
func New(name string, cfg Config, node markov.Node, setup SetupFunc) *Sim {
	s := &Sim{
		name:    name,
		cfg:     cfg,
		node:    node,
		setup:   setup,
		rng:     rngcore.NewRNG(cfg.Seed),
		invalid: markov.Validate(node),
	}
	s.Reset(0)
	return s
}

// Name returns the simulation identifier.
func (s *Sim) Name() string { return s.name }

// Size reports the grid dimensions.
func (s *Sim) Size() core.Size { return s.grid.Size() }

// Cells exposes the palette index of every cell.
func (s *Sim) Cells() []uint8 { return s.display }

// Palette returns the symbol palette.
func (s *Sim) Palette() []color.RGBA { return markov.Palette }

// Grid exposes the live grid.
func (s *Sim) Grid() *markov.Grid { return s.grid }

// Program returns the node tree being run.
func (s *Sim) Program() markov.Node { return s.node }

// Ticks reports how many ticks made progress since the last reset.
func (s *Sim) Ticks() int { return s.ticks }

// Done reports whether the program has stopped making progress.
func (s *Sim) Done() bool { return s.done }

// Err returns the validation failure or bounds violation that stopped the
// program, if any.
func (s *Sim) Err() error { return s.err }

// Seed reports the seed used by the last reset.
func (s *Sim) Seed() int64 { return s.seed }

// Config returns the current configuration.
func (s *Sim) Config() Config { return s.cfg }

// Rand exposes the generator threaded through every tick.
func (s *Sim) Rand() *rand.Rand { return s.rng.Source() }

// Reset rebuilds the grid and derives a fresh state from the program. A zero
// seed falls back to the configured one.
func (s *Sim) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = s.cfg.Seed
	}
	s.seed = effective
	s.rng.Reseed(effective)
	s.grid = markov.NewGrid(s.cfg.Width, s.cfg.Height)
	if s.setup != nil {
		s.setup(s.grid)
	}
	s.ticks = 0
	s.done = false
	s.err = nil
	s.state = nil
	if s.invalid != nil {
		s.err = fmt.Errorf("%s: %w", s.name, s.invalid)
		s.done = true
	} else {
		s.state = markov.MakeState(s.node)
	}
	s.display = s.grid.Indices(s.display)
}

// Step advances the program by one tick. Once the program stops making
// progress, or fails, further calls return false without touching the grid.
func (s *Sim) Step() bool {
	if s.done {
		return false
	}
	progressed, err := markov.Tick(s.state, s.rng.Source(), s.grid)
	if err != nil {
		s.err = fmt.Errorf("%s: tick %d: %w", s.name, s.ticks+1, err)
		s.done = true
		return false
	}
	if !progressed {
		s.done = true
		return false
	}
	s.ticks++
	s.display = s.grid.Indices(s.display)
	return true
}

// Frame renders the current grid as an indexed still image.
func (s *Sim) Frame(tileSize int) markov.Frame { return s.grid.Render(tileSize) }
