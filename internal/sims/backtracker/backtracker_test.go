package backtracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marceline-cramer/crabby-markov/internal/core"
	"github.com/marceline-cramer/crabby-markov/internal/markov"
)

func TestMazeHalts(t *testing.T) {
	sim := New(DefaultConfig())
	require.Equal(t, markov.Red, sim.Grid().Cells()[50], "head starts at offset 50")

	for i := 0; i < 100000 && sim.Step(); i++ {
	}
	require.True(t, sim.Done())
	require.NoError(t, sim.Err())

	grid := sim.Grid()
	assert.Equal(t, 1, grid.Count(markov.Red))
	for _, r := range markov.MustRule("RBB", "GGR").Rotations() {
		assert.Empty(t, grid.FindMatches(r.Find))
	}
	assert.False(t, sim.Step(), "a halted sim stays halted")
}

func TestResetReplaysSeed(t *testing.T) {
	sim := New(DefaultConfig())
	for sim.Step() {
	}
	first := sim.Grid().String()
	ticks := sim.Ticks()

	sim.Reset(0)
	assert.Zero(t, sim.Ticks())
	for sim.Step() {
	}
	assert.Equal(t, first, sim.Grid().String())
	assert.Equal(t, ticks, sim.Ticks())

	sim.Reset(99)
	for sim.Step() {
	}
	assert.NotEqual(t, first, sim.Grid().String())
}

func TestFromMap(t *testing.T) {
	c := FromMap(map[string]string{"w": "24", "h": "20", "seed": "5", "start_x": "1", "start_y": "bogus"})
	assert.Equal(t, 24, c.Width)
	assert.Equal(t, 20, c.Height)
	assert.Equal(t, int64(5), c.Seed)
	assert.Equal(t, 1, c.StartX)
	assert.Equal(t, DefaultConfig().StartY, c.StartY)
}

func TestRegistered(t *testing.T) {
	factory, ok := core.Sims()[Name]
	require.True(t, ok)
	sim := factory(map[string]string{"w": "10", "h": "10", "start_x": "40"})
	assert.Equal(t, core.Size{W: 10, H: 10}, sim.Size())
	assert.Equal(t, markov.Red.Index(), sim.Cells()[3*10+9], "start clamps into the grid")
}
