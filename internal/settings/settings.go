// Package settings persists the player's preferences. Only the mute flag is
// stored; no game progress is ever saved.
package settings

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrUnknownBackend is returned by Open for an unsupported backend name
var ErrUnknownBackend = errors.New("unknown settings backend")

// Settings is the persisted key-value blob
type Settings struct {
	Muted bool `yaml:"muted"`
}

// Defaults returns the settings used before anything has been saved
func Defaults() Settings {
	return Settings{Muted: false}
}

// Store loads and saves Settings. Load returns Defaults when nothing has been
// saved yet; stored values override defaults field by field.
type Store interface {
	Load(ctx context.Context) (Settings, error)
	Save(ctx context.Context, s Settings) error
	Close() error
}

// Options selects and configures a Store
type Options struct {
	Backend   string // file, redis or memory
	Path      string // file backend; empty means DefaultPath
	RedisAddr string
	RedisKey  string
}

// Open creates the store named by opts.Backend
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case "file", "":
		path := opts.Path
		if path == "" {
			var err error
			if path, err = DefaultPath(); err != nil {
				return nil, err
			}
		}
		return NewFileStore(path), nil
	case "redis":
		return DialRedis(ctx, opts.RedisAddr, opts.RedisKey)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}

// DefaultPath returns ~/.klondike/settings.yaml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to find home directory: %w", err)
	}
	return filepath.Join(home, ".klondike", "settings.yaml"), nil
}

func decode(data []byte) (Settings, error) {
	s := Defaults()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Defaults(), fmt.Errorf("failed to decode settings: %w", err)
	}
	return s, nil
}

func encode(s Settings) ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode settings: %w", err)
	}
	return data, nil
}
