package main

import (
	"context"
	"fmt"
	"os"

	"github.com/lox/klondike/internal/settings"
)

type SettingsCmd struct {
	Show   SettingsShowCmd   `cmd:"" default:"1" help:"Print the stored settings"`
	Mute   SettingsMuteCmd   `cmd:"" help:"Turn sound off"`
	Unmute SettingsUnmuteCmd `cmd:"" help:"Turn sound on"`
}

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(g *Globals) error {
	return withSettings(g, func(ctx context.Context, m *settings.Model) error {
		s := m.Settings()
		fmt.Printf("muted: %t\n", s.Muted)
		return nil
	})
}

type SettingsMuteCmd struct{}

func (c *SettingsMuteCmd) Run(g *Globals) error {
	return setMuted(g, true)
}

type SettingsUnmuteCmd struct{}

func (c *SettingsUnmuteCmd) Run(g *Globals) error {
	return setMuted(g, false)
}

func setMuted(g *Globals, muted bool) error {
	return withSettings(g, func(ctx context.Context, m *settings.Model) error {
		if err := m.SetMuted(ctx, muted); err != nil {
			return err
		}
		fmt.Printf("muted: %t\n", m.Muted())
		return nil
	})
}

// withSettings opens the configured store, runs fn and closes the store
func withSettings(g *Globals, fn func(context.Context, *settings.Model) error) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}

	ctx := context.Background()
	logger := newLogger(os.Stderr, cfg.Log.Level)

	model, store, err := openSettings(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open settings: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close settings store", "error", err)
		}
	}()

	return fn(ctx, model)
}
