package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/tatianab/eldritch-pursuit/internal/config"
	"github.com/tatianab/eldritch-pursuit/internal/data"
	"github.com/tatianab/eldritch-pursuit/internal/dice"
	"github.com/tatianab/eldritch-pursuit/internal/engine"
	"github.com/tatianab/eldritch-pursuit/internal/logging"
	"github.com/tatianab/eldritch-pursuit/internal/models"
	"github.com/tatianab/eldritch-pursuit/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogFile, cfg.LogLevel, cfg.Debug)
	if err != nil {
		fmt.Printf("Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	factories, err := models.LoadFactories(data.Open(cfg.DataDir), logger)
	if err != nil {
		fmt.Printf("Error loading card data: %v\n", err)
		os.Exit(1)
	}

	rng, seed, err := dice.NewRand(cfg.Seed)
	if err != nil {
		fmt.Printf("Error seeding dice: %v\n", err)
		os.Exit(1)
	}
	logger.Info("starting game", zap.Int64("seed", seed), zap.Int("players", cfg.Players))

	ancient, err := engine.NewAncientOne(cfg.AncientOne)
	if err != nil {
		fmt.Printf("Error choosing Ancient One: %v\n", err)
		os.Exit(1)
	}

	ui := tui.NewBridge()
	eng := engine.NewEngine(models.NewGameState(factories, rng, logger), ancient, ui, engine.Options{
		ActionsPerTurn: cfg.ActionsPerTurn,
		DoomPerMythos:  cfg.DoomPerMythos,
		ReserveSize:    cfg.ReserveSize,
	}, logger)

	if err := tui.Run(ctx, eng, ui, cfg.Players); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
