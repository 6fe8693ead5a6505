package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/marceline-cramer/crabby-markov/internal/core"
	"github.com/marceline-cramer/crabby-markov/internal/logging"
	"github.com/marceline-cramer/crabby-markov/internal/runner"
	_ "github.com/marceline-cramer/crabby-markov/internal/sims/all"
	"github.com/marceline-cramer/crabby-markov/internal/telemetry"
	rngcore "github.com/marceline-cramer/crabby-markov/pkg/core"
)

type seedResult struct {
	seed      int64
	ticks     int
	halted    bool
	truncated bool
	err       error
}

type sweepConfig struct {
	preset   string
	options  map[string]string
	base     int64
	count    int
	workers  int
	maxTicks int
}

func main() {
	preset := flag.String("preset", "backtracker", "program to sweep")
	count := flag.Int("seeds", 64, "number of seeds to run")
	base := flag.Int64("base", 1, "seed the per-run seeds are derived from")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	maxTicks := flag.Int("max-ticks", 0, "tick limit per run, 0 for none")
	width := flag.Int("w", 0, "grid width, 0 keeps the preset default")
	height := flag.Int("h", 0, "grid height, 0 keeps the preset default")
	metrics := flag.Bool("metrics", false, "print Prometheus metrics after the sweep")
	level := flag.String("log-level", "warn", "log level")
	flag.Parse()

	lvl, err := logging.ParseLevel(*level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := logging.New(lvl)

	if _, ok := core.Sims()[*preset]; !ok {
		logger.Error("unknown preset", "preset", *preset, "available", core.Names())
		os.Exit(2)
	}

	opts := map[string]string{}
	if *width > 0 {
		opts["w"] = strconv.Itoa(*width)
	}
	if *height > 0 {
		opts["h"] = strconv.Itoa(*height)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := sweepConfig{
		preset:   *preset,
		options:  opts,
		base:     *base,
		count:    *count,
		workers:  *workers,
		maxTicks: *maxTicks,
	}
	m := telemetry.New()

	fmt.Printf("Sweeping %s over %d seeds (%d workers)\n", cfg.preset, cfg.count, cfg.workers)
	start := time.Now()
	results := sweep(ctx, cfg, m, logger)
	report(os.Stdout, results, time.Since(start))

	if *metrics {
		if err := m.WriteText(os.Stdout); err != nil {
			logger.Error("write metrics", "error", err)
		}
	}
	if ctx.Err() != nil {
		os.Exit(130)
	}
}

// sweep runs the preset once per derived seed on a pool of workers. Each run
// gets its own sim, so workers share nothing but the metrics.
func sweep(ctx context.Context, cfg sweepConfig, m *telemetry.Metrics, logger *slog.Logger) []seedResult {
	factory := core.Sims()[cfg.preset]
	workers := cfg.workers
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int64)
	results := make(chan seedResult)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for seed := range jobs {
				results <- runSeed(ctx, factory, cfg, seed, m, logger)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(jobs)
		for _, seed := range rngcore.Seeds(cfg.base, cfg.count) {
			select {
			case jobs <- seed:
			case <-ctx.Done():
				return
			}
		}
	}()

	var all []seedResult
	for res := range results {
		all = append(all, res)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].seed < all[j].seed })
	return all
}

func runSeed(ctx context.Context, factory core.Factory, cfg sweepConfig, seed int64, m *telemetry.Metrics, logger *slog.Logger) seedResult {
	opts := make(map[string]string, len(cfg.options)+1)
	for k, v := range cfg.options {
		opts[k] = v
	}
	opts["seed"] = strconv.FormatInt(seed, 10)

	sim := factory(opts)
	model, ok := sim.(runner.Model)
	if !ok {
		return seedResult{seed: seed, err: fmt.Errorf("preset %s cannot run headless", cfg.preset)}
	}
	res, err := runner.Run(ctx, model, runner.Options{MaxTicks: cfg.maxTicks, Logger: logger, Metrics: m})
	return seedResult{seed: seed, ticks: res.Ticks, halted: res.Halted, truncated: res.Truncated, err: err}
}

func report(w io.Writer, results []seedResult, elapsed time.Duration) {
	var ticks []int
	failed, truncated := 0, 0
	for _, res := range results {
		switch {
		case res.err != nil:
			failed++
			fmt.Fprintf(w, "seed %d failed after %d ticks: %v\n", res.seed, res.ticks, res.err)
			continue
		case res.truncated:
			truncated++
		}
		ticks = append(ticks, res.ticks)
	}
	fmt.Fprintf(w, "Completed %d runs in %s (%d failed, %d truncated)\n", len(results), elapsed.Round(time.Millisecond), failed, truncated)
	if len(ticks) == 0 {
		return
	}
	sort.Ints(ticks)
	sum := 0
	for _, t := range ticks {
		sum += t
	}
	fmt.Fprintf(w, "Ticks: min %d  median %d  mean %.1f  max %d\n",
		ticks[0], ticks[len(ticks)/2], float64(sum)/float64(len(ticks)), ticks[len(ticks)-1])

	var longest *seedResult
	for i := range results {
		res := &results[i]
		if res.err != nil {
			continue
		}
		if longest == nil || res.ticks > longest.ticks {
			longest = res
		}
	}
	fmt.Fprintf(w, "Longest run: seed %d with %d ticks\n", longest.seed, longest.ticks)
}
