package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv(HomeEnv, home)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, home, cfg.HomeDir)
	assert.Equal(t, filepath.Join(home, "contacts.db"), cfg.Store.Database)
	assert.Equal(t, filepath.Join(home, "accounts"), cfg.Accounts.Dir)
	assert.Equal(t, 8, cfg.Engine.Fanout)
	assert.True(t, cfg.Engine.PhotoHighRes, "full-resolution photos by default")

	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoad_HomeConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv(HomeEnv, home)
	writeConfig(t, home, `
[store]
database = "/data/contacts.db"

[engine]
fanout = 2
photo_high_res = false

[log]
level = "debug"
`)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/data/contacts.db", cfg.Store.Database)
	assert.Equal(t, filepath.Join(home, "accounts"), cfg.Accounts.Dir)
	assert.Equal(t, 2, cfg.Engine.Fanout)
	assert.False(t, cfg.Engine.PhotoHighRes)

	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoad_ExpandsTilde(t *testing.T) {
	t.Setenv(HomeEnv, t.TempDir())
	path := writeConfig(t, t.TempDir(), `
[accounts]
dir = "~/decls"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	userHome, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(userHome, "decls"), cfg.Accounts.Dir)
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"malformed", "[store\n", "decode config"},
		{"unknown key", "[engine]\nfan_out = 3\n", "unknown keys: engine.fan_out"},
		{"zero fanout", "[engine]\nfanout = 0\n", "engine.fanout must be at least 1"},
		{"bad level", "[log]\nlevel = \"loud\"\n", "log.level"},
		{"empty database", "[store]\ndatabase = \"\"\n", "store.database must not be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(HomeEnv, t.TempDir())
			_, err := Load(writeConfig(t, t.TempDir(), tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
