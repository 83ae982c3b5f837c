package main

import (
	"fmt"
	"os"
	"time"

	"github.com/lox/klondike/internal/simulator"
)

type SimulateCmd struct {
	Games    int   `short:"n" default:"1000" help:"Number of games to play"`
	Seed     int64 `default:"0" help:"Base seed (0 for random)"`
	Workers  int   `short:"w" default:"0" help:"Concurrent games (0 uses every CPU)"`
	MaxSteps int   `default:"0" help:"Actions per game before giving up (0 for the default)"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}

	logger := newLogger(os.Stderr, cfg.Log.Level)
	ctx := setupSignalHandler(logger)

	sim := simulator.New(simulator.Config{
		Games:    c.Games,
		Seed:     c.Seed,
		Workers:  c.Workers,
		MaxSteps: c.MaxSteps,
		Logger:   logger,
	})

	logger.Info("Starting simulation", "games", c.Games, "seed", sim.Seed())
	start := time.Now()

	stats, err := sim.Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	simulator.PrintSummary(os.Stdout, stats, sim.Seed())
	fmt.Printf("\nCompleted in %s (%.0f games/sec)\n",
		time.Since(start).Round(time.Millisecond), float64(stats.Games)/time.Since(start).Seconds())
	return nil
}
