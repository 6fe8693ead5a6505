//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"

	"github.com/marceline-cramer/crabby-markov/internal/app"
	"github.com/marceline-cramer/crabby-markov/internal/core"
	"github.com/marceline-cramer/crabby-markov/internal/logging"
	_ "github.com/marceline-cramer/crabby-markov/internal/sims/all"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	logger := logging.New(slog.LevelInfo)

	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		logger.Error("unknown program", "sim", cfg.Sim, "available", core.Names())
		os.Exit(2)
	}
	opts, err := cfg.Options()
	if err != nil {
		logger.Error("bad program options", "error", err)
		os.Exit(2)
	}

	sim := factory(opts)
	sim.Reset(cfg.Seed)

	game := app.New(sim, cfg.Scale, cfg.HUDWidth, cfg.Seed)
	size := sim.Size()

	ebiten.SetWindowTitle("crabby-markov: " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale+cfg.HUDWidth, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("game loop", "error", err)
		os.Exit(1)
	}
}
