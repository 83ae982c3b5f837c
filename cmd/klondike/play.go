package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/klondike/internal/tui"
)

type PlayCmd struct {
	Seed    int64 `help:"Deal seed (0 uses the config file, then random)"`
	NoColor bool  `help:"Disable colours"`
	Quiet   bool  `help:"Never ring the terminal bell"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}

	logger, closeLog, err := openLogFile(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	model, store, err := openSettings(context.Background(), cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open settings: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close settings store", "error", err)
		}
	}()

	if c.NoColor {
		tui.DisableColor()
	}

	seed := c.Seed
	if seed == 0 {
		seed = cfg.Game.Seed
	}

	tcfg := tui.Config{
		Seed:          seed,
		DragThreshold: cfg.Game.DragThreshold,
		Settings:      model,
		Logger:        logger,
	}
	if !c.Quiet {
		tcfg.Bell = os.Stderr
	}

	m := tui.NewModel(tcfg)
	logger.Info("Starting game", "game", m.Engine().GameID(), "seed", m.Engine().Seed())

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run game: %w", err)
	}

	e := m.Engine()
	logger.Info("Game closed", "game", e.GameID(), "state", e.State(), "score", e.Score(), "moves", e.Moves())
	return nil
}
