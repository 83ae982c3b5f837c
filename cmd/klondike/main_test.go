package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/klondike/internal/gameid"
)

func TestLoadConfig(t *testing.T) {
	t.Run("missing file uses defaults", func(t *testing.T) {
		cfg, err := loadConfig(&Globals{Config: filepath.Join(t.TempDir(), "none.hcl")})
		require.NoError(t, err)
		assert.Equal(t, "info", cfg.Log.Level)
	})

	t.Run("debug flag overrides level", func(t *testing.T) {
		cfg, err := loadConfig(&Globals{Config: filepath.Join(t.TempDir(), "none.hcl"), Debug: true})
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("invalid config is rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.hcl")
		require.NoError(t, os.WriteFile(path, []byte("game {\n  seed = -1\n}\n"), 0o644))

		_, err := loadConfig(&Globals{Config: path})
		assert.ErrorContains(t, err, "seed cannot be negative")
	})
}

func TestCLIParses(t *testing.T) {
	tests := []struct {
		args    []string
		command string
	}{
		{[]string{"play", "--seed", "7"}, "play"},
		{[]string{"simulate", "-n", "10", "--workers", "2"}, "simulate"},
		{[]string{"deal", "--seed", "3"}, "deal"},
		{[]string{"settings", "mute"}, "settings mute"},
		{[]string{"id", gameid.Encode(gameid.New())}, "id <id>"},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			var cli CLI
			parser, err := kong.New(&cli, kong.Vars{"version": "test"})
			require.NoError(t, err)

			ctx, err := parser.Parse(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.command, ctx.Command())
		})
	}
}

func TestSettingsCommandsUseMemoryBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "klondike.hcl")
	require.NoError(t, os.WriteFile(path, []byte("settings {\n  backend = \"memory\"\n}\n"), 0o644))

	g := &Globals{Config: path}
	require.NoError(t, (&SettingsMuteCmd{}).Run(g))
	require.NoError(t, (&SettingsShowCmd{}).Run(g))
}

func TestIDCommand(t *testing.T) {
	id := gameid.New()

	t.Run("prints the decoded ID", func(t *testing.T) {
		var out bytes.Buffer
		cmd := &IDCmd{ID: gameid.Encode(id), out: &out}
		require.NoError(t, cmd.Validate())
		require.NoError(t, cmd.Run(&Globals{}))

		assert.Contains(t, out.String(), id.String())
		assert.Contains(t, out.String(), gameid.Short(id))
		assert.Contains(t, out.String(), gameid.Created(id).Format(time.RFC3339))
	})

	t.Run("malformed ID is rejected by the parser", func(t *testing.T) {
		var cli CLI
		parser, err := kong.New(&cli, kong.Vars{"version": "test"})
		require.NoError(t, err)

		_, err = parser.Parse([]string{"id", "not-a-game-id"})
		assert.ErrorContains(t, err, "invalid game ID")
	})
}
