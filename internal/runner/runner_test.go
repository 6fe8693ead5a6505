package runner

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marceline-cramer/crabby-markov/internal/markov"
	"github.com/marceline-cramer/crabby-markov/internal/sims/growth"
	"github.com/marceline-cramer/crabby-markov/internal/sims/program"
	"github.com/marceline-cramer/crabby-markov/internal/telemetry"
)

// countdown makes progress a fixed number of times, then halts or fails.
type countdown struct {
	left  int
	fail  error
	steps int
	err   error
}

func (c *countdown) Name() string { return "countdown" }

func (c *countdown) Step() bool {
	if c.left == 0 {
		c.err = c.fail
		return false
	}
	c.left--
	c.steps++
	return true
}

func (c *countdown) Err() error { return c.err }

func (c *countdown) Frame(int) markov.Frame {
	return markov.Frame{Width: 1, Height: 1, Pix: []uint8{uint8(c.steps)}}
}

func TestRunUntilHalt(t *testing.T) {
	res, err := Run(context.Background(), &countdown{left: 5}, Options{})
	require.NoError(t, err)

	assert.Equal(t, 5, res.Ticks)
	assert.True(t, res.Halted)
	assert.False(t, res.Truncated)
	require.Len(t, res.Frames, 1)
	assert.Equal(t, []uint8{5}, res.Frames[0].Pix)

	id, err := uuid.Parse(res.RunID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
}

func TestRunTruncates(t *testing.T) {
	res, err := Run(context.Background(), &countdown{left: 100}, Options{MaxTicks: 7})
	require.NoError(t, err)

	assert.Equal(t, 7, res.Ticks)
	assert.True(t, res.Truncated)
	assert.False(t, res.Halted)
}

func TestRunFrameCadence(t *testing.T) {
	var seen []int
	res, err := Run(context.Background(), &countdown{left: 7}, Options{
		FrameEvery: 3,
		OnFrame:    func(tick int, _ markov.Frame) { seen = append(seen, tick) },
	})
	require.NoError(t, err)

	// 0, 3 and 6 on cadence, then the final state at 7.
	assert.Equal(t, []int{0, 3, 6, 7}, seen)
	assert.Len(t, res.Frames, 4)
}

func TestRunFinalFrameNotDuplicated(t *testing.T) {
	res, err := Run(context.Background(), &countdown{left: 6}, Options{FrameEvery: 3})
	require.NoError(t, err)
	assert.Len(t, res.Frames, 3)
}

func TestRunFailure(t *testing.T) {
	boom := errors.New("boom")
	metrics := telemetry.New()

	res, err := Run(context.Background(), &countdown{left: 2, fail: boom}, Options{Metrics: metrics})
	require.ErrorIs(t, err, boom)

	assert.Equal(t, 2, res.Ticks)
	assert.False(t, res.Halted)
	assert.Len(t, res.Frames, 1)
	n, err := testutil.GatherAndCount(metrics.Registry(), "markov_runs_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Run(ctx, &countdown{left: 10}, Options{})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, res.Ticks)
	assert.Len(t, res.Frames, 1)
}

func TestRunGrowthPreset(t *testing.T) {
	cfg := growth.DefaultConfig()
	cfg.Config = program.Config{Width: 6, Height: 5, Seed: 11}
	sim := growth.New(cfg)
	metrics := telemetry.New()

	res, err := Run(context.Background(), sim, Options{TileSize: 2, Metrics: metrics})
	require.NoError(t, err)

	assert.True(t, res.Halted)
	assert.Equal(t, 30, res.Ticks)
	assert.Equal(t, "growth", res.Preset)
	require.Len(t, res.Frames, 1)
	assert.Equal(t, 12, res.Frames[0].Width)
	assert.Equal(t, 10, res.Frames[0].Height)
	assert.Equal(t, 0, sim.Grid().Count(markov.Black))

	var buf bytes.Buffer
	require.NoError(t, metrics.WriteText(&buf))
	assert.Contains(t, buf.String(), `markov_ticks_total{preset="growth"} 30`)
}
