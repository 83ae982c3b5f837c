// Package config loads the klondike HCL configuration file.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config represents the complete configuration
type Config struct {
	Log      *LogSettings     `hcl:"log,block"`
	Game     *GameSettings    `hcl:"game,block"`
	Settings *SettingsBackend `hcl:"settings,block"`
}

// LogSettings controls where and how much is logged
type LogSettings struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// GameSettings controls dealing and input
type GameSettings struct {
	Seed          int64   `hcl:"seed,optional"` // 0 means random
	DragThreshold float64 `hcl:"drag_threshold,optional"`
}

// SettingsBackend selects where player settings are persisted
type SettingsBackend struct {
	Backend   string `hcl:"backend,optional"`
	Path      string `hcl:"path,optional"`
	RedisAddr string `hcl:"redis_addr,optional"`
	RedisKey  string `hcl:"redis_key,optional"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Log: &LogSettings{
			Level: "info",
			File:  "klondike.log",
		},
		Game: &GameSettings{
			Seed:          0,
			DragThreshold: 10,
		},
		Settings: &SettingsBackend{
			Backend:   "file",
			Path:      "",
			RedisAddr: "localhost:6379",
			RedisKey:  "klondike:settings",
		},
	}
}

// Load loads configuration from an HCL file. A missing file yields the
// defaults, and so does every block or attribute the file leaves out.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	defaults := Default()

	if c.Log == nil {
		c.Log = defaults.Log
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.Log.File == "" {
		c.Log.File = defaults.Log.File
	}

	if c.Game == nil {
		c.Game = defaults.Game
	}
	if c.Game.DragThreshold == 0 {
		c.Game.DragThreshold = defaults.Game.DragThreshold
	}

	if c.Settings == nil {
		c.Settings = defaults.Settings
	}
	if c.Settings.Backend == "" {
		c.Settings.Backend = defaults.Settings.Backend
	}
	if c.Settings.RedisAddr == "" {
		c.Settings.RedisAddr = defaults.Settings.RedisAddr
	}
	if c.Settings.RedisKey == "" {
		c.Settings.RedisKey = defaults.Settings.RedisKey
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.Log.Level] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}

	if c.Game.Seed < 0 {
		return fmt.Errorf("seed cannot be negative")
	}
	if c.Game.DragThreshold <= 0 {
		return fmt.Errorf("drag threshold must be positive")
	}

	switch c.Settings.Backend {
	case "file", "memory":
	case "redis":
		if c.Settings.RedisAddr == "" {
			return fmt.Errorf("redis backend requires redis_addr")
		}
	default:
		return fmt.Errorf("invalid settings backend: %s", c.Settings.Backend)
	}

	return nil
}
