// Package config loads the contactlens TOML configuration.
//
//	[store]
//	database = "~/.contactlens/contacts.db"
//
//	[accounts]
//	dir = "~/.contactlens/accounts"
//
//	[engine]
//	fanout = 8
//	photo_high_res = true
//
//	[log]
//	level = "info"
//
// Every key is optional. Unknown keys are rejected.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/roach88/contactlens/internal/engine"
)

// HomeEnv overrides the default home directory.
const HomeEnv = "CONTACTLENS_HOME"

// Config is the contactlens configuration.
type Config struct {
	Store    StoreConfig    `toml:"store"`
	Accounts AccountsConfig `toml:"accounts"`
	Engine   EngineConfig   `toml:"engine"`
	Log      LogConfig      `toml:"log"`

	// HomeDir is computed, not read from the file.
	HomeDir string `toml:"-"`
}

// StoreConfig locates the SQLite contact store.
type StoreConfig struct {
	Database string `toml:"database"`
}

// AccountsConfig locates the CUE authenticator declarations.
type AccountsConfig struct {
	Dir string `toml:"dir"`
}

// EngineConfig tunes the query orchestrator.
type EngineConfig struct {
	Fanout       int  `toml:"fanout"`
	PhotoHighRes bool `toml:"photo_high_res"`
}

// LogConfig sets the log level: debug, info, warn or error.
type LogConfig struct {
	Level string `toml:"level"`
}

// DefaultHome returns the contactlens home directory, honoring
// CONTACTLENS_HOME.
func DefaultHome() string {
	if h := os.Getenv(HomeEnv); h != "" {
		return h
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".contactlens"
	}
	return filepath.Join(home, ".contactlens")
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	homeDir := DefaultHome()
	return &Config{
		HomeDir:  homeDir,
		Store:    StoreConfig{Database: filepath.Join(homeDir, "contacts.db")},
		Accounts: AccountsConfig{Dir: filepath.Join(homeDir, "accounts")},
		Engine:   EngineConfig{Fanout: engine.DefaultFanout, PhotoHighRes: true},
		Log:      LogConfig{Level: "info"},
	}
}

// Load reads the configuration at path. An empty path means
// $CONTACTLENS_HOME/config.toml, which may be absent; an explicit path
// must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = filepath.Join(cfg.HomeDir, "config.toml")
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("decode config: unknown keys: %s", strings.Join(keys, ", "))
	}

	cfg.Store.Database = expandPath(cfg.Store.Database)
	cfg.Accounts.Dir = expandPath(cfg.Accounts.Dir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Store.Database == "" {
		return fmt.Errorf("store.database must not be empty")
	}
	if c.Engine.Fanout < 1 {
		return fmt.Errorf("engine.fanout must be at least 1, got %d", c.Engine.Fanout)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses Log.Level. An empty level is info.
func (c *Config) LogLevel() (slog.Level, error) {
	if c.Log.Level == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// expandPath expands a leading ~ to the user's home directory.
func expandPath(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
