// Package runner drives a rewrite program headlessly until it halts, hits a
// tick limit or its context is cancelled, collecting frames along the way.
package runner

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/marceline-cramer/crabby-markov/internal/logging"
	"github.com/marceline-cramer/crabby-markov/internal/markov"
	"github.com/marceline-cramer/crabby-markov/internal/telemetry"
)

// Model is what the runner steps. *program.Sim satisfies it.
type Model interface {
	Name() string
	// Step reports whether the tick made progress.
	Step() bool
	// Err returns the failure that stopped the model, if any.
	Err() error
	Frame(tileSize int) markov.Frame
}

// Options tune a run. The zero value runs to completion and keeps only the
// final frame.
type Options struct {
	// MaxTicks stops the run after that many successful ticks; 0 is unlimited.
	MaxTicks int
	// FrameEvery records the initial frame and one every n ticks; 0 disables.
	FrameEvery int
	TileSize   int

	Logger  *slog.Logger
	Metrics *telemetry.Metrics

	// OnFrame, when set, sees every recorded frame as it is captured.
	OnFrame func(tick int, frame markov.Frame)
}

// Result summarises a finished run.
type Result struct {
	RunID     string
	Preset    string
	Ticks     int
	Halted    bool
	Truncated bool
	Frames    []markov.Frame
	Elapsed   time.Duration
}

// Run steps m until it halts. The final state is always the last frame of
// the result, also when the run fails or is cancelled.
func Run(ctx context.Context, m Model, opts Options) (Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	res := Result{
		RunID:  uuid.Must(uuid.NewV7()).String(),
		Preset: m.Name(),
	}
	logger = logger.With("run", res.RunID, "preset", res.Preset)
	logger.Debug("run started", "max_ticks", opts.MaxTicks, "frame_every", opts.FrameEvery)

	start := time.Now()
	lastFrame := -1
	capture := func() {
		frame := m.Frame(opts.TileSize)
		res.Frames = append(res.Frames, frame)
		lastFrame = res.Ticks
		if opts.OnFrame != nil {
			opts.OnFrame(res.Ticks, frame)
		}
	}
	finish := func(outcome string, err error) (Result, error) {
		if lastFrame != res.Ticks {
			capture()
		}
		res.Elapsed = time.Since(start)
		opts.Metrics.ObserveRun(res.Preset, outcome, res.Elapsed)
		if err != nil {
			logger.Error("run stopped", "ticks", res.Ticks, "outcome", outcome, "error", err)
		} else {
			logger.Info("run finished", "ticks", res.Ticks, "outcome", outcome, "elapsed", res.Elapsed)
		}
		return res, err
	}

	if opts.FrameEvery > 0 {
		capture()
	}
	for {
		if err := ctx.Err(); err != nil {
			return finish(telemetry.OutcomeCancelled, err)
		}
		if opts.MaxTicks > 0 && res.Ticks >= opts.MaxTicks {
			res.Truncated = true
			return finish(telemetry.OutcomeTruncated, nil)
		}
		if !m.Step() {
			if err := m.Err(); err != nil {
				return finish(telemetry.OutcomeFailed, err)
			}
			res.Halted = true
			return finish(telemetry.OutcomeHalted, nil)
		}
		res.Ticks++
		opts.Metrics.ObserveTick(res.Preset)
		if opts.FrameEvery > 0 && res.Ticks%opts.FrameEvery == 0 {
			capture()
		}
	}
}
