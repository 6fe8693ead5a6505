package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/marceline-cramer/crabby-markov/internal/config"
	"github.com/marceline-cramer/crabby-markov/internal/core"
	"github.com/marceline-cramer/crabby-markov/internal/logging"
	"github.com/marceline-cramer/crabby-markov/internal/markov"
	"github.com/marceline-cramer/crabby-markov/internal/render"
	"github.com/marceline-cramer/crabby-markov/internal/runner"
	"github.com/marceline-cramer/crabby-markov/internal/telemetry"
)

// gridded is implemented by sims that can expose their symbol grid.
type gridded interface {
	Grid() *markov.Grid
}

var runCmd = &cobra.Command{
	Use:   "run [preset]",
	Short: "Run a program headlessly and write the result",
	Long: `Runs a program until it halts or reaches --max-ticks. The output format
follows the file extension: .gif records an animation, .png the final frame
and .txt the final grid as symbol letters. Without --output the final grid is
printed to stdout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveRunConfig(cmd, args)
		if err != nil {
			return err
		}
		level, err := logging.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		logger := logging.New(level)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var metrics *telemetry.Metrics
		dumpMetrics, _ := cmd.Flags().GetBool("metrics")
		if dumpMetrics {
			metrics = telemetry.New()
		}
		if _, err := execute(ctx, cfg, cmd.OutOrStdout(), logger, metrics); err != nil {
			return err
		}
		if metrics != nil {
			return metrics.WriteText(cmd.ErrOrStderr())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	bindRunFlags(runCmd.Flags())
}

func bindRunFlags(f *pflag.FlagSet) {
	f.StringP("config", "c", "", "YAML run file")
	f.String("preset", "", "program to run")
	f.Int("width", 0, "grid width, 0 keeps the preset default")
	f.Int("height", 0, "grid height, 0 keeps the preset default")
	f.Int64("seed", 0, "seed, 0 keeps the preset default")
	f.Int("max-ticks", 0, "stop after this many ticks, 0 for no limit")
	f.Int("frame-every", 0, "record a GIF frame every n ticks")
	f.Int("tile", 0, "pixels per cell in image output")
	f.Int("delay", 0, "GIF frame delay in hundredths of a second")
	f.Int("hold", 0, "delay of the final GIF frame in hundredths of a second")
	f.StringP("output", "o", "", "output file (.gif, .png or .txt)")
	f.StringToString("param", nil, "preset option, e.g. --param forests=5")
	f.Bool("metrics", false, "print Prometheus metrics to stderr when done")
}

// resolveRunConfig loads the run file, if any, and lets explicitly set flags
// override it.
func resolveRunConfig(cmd *cobra.Command, args []string) (config.RunConfig, error) {
	cfg := config.Default()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	f := cmd.Flags()
	if len(args) == 1 {
		cfg.Preset = args[0]
	}
	if f.Changed("preset") {
		cfg.Preset, _ = f.GetString("preset")
	}
	if f.Changed("width") {
		cfg.Width, _ = f.GetInt("width")
	}
	if f.Changed("height") {
		cfg.Height, _ = f.GetInt("height")
	}
	if f.Changed("seed") {
		cfg.Seed, _ = f.GetInt64("seed")
	}
	if f.Changed("max-ticks") {
		cfg.MaxTicks, _ = f.GetInt("max-ticks")
	}
	if f.Changed("frame-every") {
		cfg.FrameEvery, _ = f.GetInt("frame-every")
	}
	if f.Changed("tile") {
		cfg.TileSize, _ = f.GetInt("tile")
	}
	if f.Changed("delay") {
		cfg.FrameDelay, _ = f.GetInt("delay")
	}
	if f.Changed("hold") {
		cfg.HoldDelay, _ = f.GetInt("hold")
	}
	if f.Changed("output") {
		cfg.Output, _ = f.GetString("output")
	}
	if f.Changed("log-level") {
		cfg.LogLevel, _ = f.GetString("log-level")
	}
	if f.Changed("param") {
		params, _ := f.GetStringToString("param")
		if cfg.Params == nil {
			cfg.Params = map[string]string{}
		}
		for k, v := range params {
			cfg.Params[k] = v
		}
	}
	return cfg, cfg.Validate()
}

// execute builds the preset, runs it and writes the output named by cfg.
func execute(ctx context.Context, cfg config.RunConfig, stdout io.Writer, logger *slog.Logger, metrics *telemetry.Metrics) (runner.Result, error) {
	factory, ok := core.Sims()[cfg.Preset]
	if !ok {
		return runner.Result{}, fmt.Errorf("%w: %q", config.ErrUnknownPreset, cfg.Preset)
	}
	sim := factory(cfg.PresetOptions())
	model, ok := sim.(runner.Model)
	if !ok {
		return runner.Result{}, fmt.Errorf("preset %s cannot run headless", cfg.Preset)
	}

	var anim render.Animation
	gif := strings.EqualFold(filepath.Ext(cfg.Output), ".gif")
	opts := runner.Options{
		MaxTicks: cfg.MaxTicks,
		TileSize: cfg.TileSize,
		Logger:   logger,
		Metrics:  metrics,
	}
	if gif {
		opts.FrameEvery = cfg.FrameEvery
		opts.OnFrame = func(_ int, frame markov.Frame) { anim.Add(frame, cfg.FrameDelay) }
	}

	res, runErr := runner.Run(ctx, model, opts)
	if runErr != nil && ctx.Err() == nil {
		return res, runErr
	}

	anim.Hold(cfg.HoldDelay)

	var text string
	if g, ok := sim.(gridded); ok {
		text = g.Grid().String()
	}
	if err := writeOutput(cfg.Output, stdout, res, &anim, text); err != nil {
		return res, err
	}
	if runErr == nil {
		logger.Info("wrote result", "output", outputName(cfg.Output), "ticks", res.Ticks, "halted", res.Halted)
	}
	return res, runErr
}

func outputName(path string) string {
	if path == "" {
		return "stdout"
	}
	return path
}

func writeOutput(path string, stdout io.Writer, res runner.Result, anim *render.Animation, text string) error {
	if path == "" {
		_, err := io.WriteString(stdout, text)
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gif":
		err = anim.Encode(f)
	case ".png":
		err = render.WritePNG(f, res.Frames[len(res.Frames)-1])
	case ".txt":
		_, err = io.WriteString(f, text)
	default:
		err = fmt.Errorf("unsupported output format %q", filepath.Ext(path))
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
