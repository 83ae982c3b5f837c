package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/klondike/internal/config"
	"github.com/lox/klondike/internal/settings"
)

// loadConfig reads and validates the config file, applying --debug
func loadConfig(g *Globals) (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if g.Debug {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", g.Config, err)
	}
	return cfg, nil
}

// newLogger creates a logger at the configured level writing to w
func newLogger(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}

// openLogFile logs to the configured file, since the game owns the terminal
func openLogFile(cfg *config.Config) (*log.Logger, func(), error) {
	f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger := newLogger(f, cfg.Log.Level)
	closer := func() {
		if err := f.Close(); err != nil {
			log.Error("Failed to close log file", "error", err)
		}
	}
	return logger, closer, nil
}

// openSettings connects to the configured settings store and loads it
func openSettings(ctx context.Context, cfg *config.Config, logger *log.Logger) (*settings.Model, settings.Store, error) {
	store, err := settings.Open(ctx, settings.Options{
		Backend:   cfg.Settings.Backend,
		Path:      cfg.Settings.Path,
		RedisAddr: cfg.Settings.RedisAddr,
		RedisKey:  cfg.Settings.RedisKey,
	})
	if err != nil {
		return nil, nil, err
	}

	model := settings.NewModel(store, logger)
	if err := model.Load(ctx); err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	return model, store, nil
}

// setupSignalHandler creates a context that is cancelled on interrupt signals
func setupSignalHandler(logger *log.Logger) context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Info("Received signal, shutting down", "signal", sig.String())
		cancel()
	}()

	return ctx
}
