package flood

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marceline-cramer/crabby-markov/internal/markov"
)

func TestFloodPartitionsGrid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 32
	cfg.Height = 24
	sim := New(cfg)

	for i := 0; i < 10000 && sim.Step(); i++ {
	}
	require.True(t, sim.Done())
	require.NoError(t, sim.Err())

	grid := sim.Grid()
	assert.Zero(t, grid.Count(markov.Black))
	assert.NotZero(t, grid.Count(markov.Red))
	assert.NotZero(t, grid.Count(markov.White), "borders are drawn where the floods meet")
	for _, r := range markov.MustRule("RU", "*W").Rotations() {
		assert.Empty(t, grid.FindMatches(r.Find))
	}
}

func TestFloodIsFast(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 40
	cfg.Height = 40
	sim := New(cfg)
	for sim.Step() {
	}
	// Parallel fronts advance one ring per tick, far fewer ticks than cells.
	assert.Less(t, sim.Ticks(), 40*40/4)
}
