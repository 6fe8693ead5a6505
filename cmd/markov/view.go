package main

import (
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/marceline-cramer/crabby-markov/internal/config"
	"github.com/marceline-cramer/crabby-markov/internal/core"
	"github.com/marceline-cramer/crabby-markov/internal/tui"
)

var viewCmd = &cobra.Command{
	Use:   "view [preset]",
	Short: "Watch a program run in the terminal",
	Long:  `Keys: space pauses, n steps while paused, r resets, q or Esc quits.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Default()
		if len(args) == 1 {
			cfg.Preset = args[0]
		}
		f := cmd.Flags()
		cfg.Width, _ = f.GetInt("width")
		cfg.Height, _ = f.GetInt("height")
		cfg.Seed, _ = f.GetInt64("seed")
		cfg.Params, _ = f.GetStringToString("param")
		if err := cfg.Validate(); err != nil {
			return err
		}
		tps, _ := f.GetInt("tps")

		sim := core.Sims()[cfg.Preset](cfg.PresetOptions())

		screen, err := tcell.NewScreen()
		if err != nil {
			return err
		}
		if err := screen.Init(); err != nil {
			return err
		}
		defer screen.Fini()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return tui.New(screen, sim, tps, cfg.Seed).Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)

	f := viewCmd.Flags()
	f.Int("width", 0, "grid width, 0 keeps the preset default")
	f.Int("height", 0, "grid height, 0 keeps the preset default")
	f.Int64("seed", 0, "seed, 0 keeps the preset default")
	f.Int("tps", 30, "ticks per second")
	f.StringToString("param", nil, "preset option, e.g. --param sources=6")
}
