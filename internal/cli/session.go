package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/contactlens/internal/accounts"
	"github.com/roach88/contactlens/internal/config"
	"github.com/roach88/contactlens/internal/engine"
	"github.com/roach88/contactlens/internal/store"
)

// session bundles what a command needs: configuration, a logger, and
// lazily the store and orchestrator.
type session struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *store.Store
	orch   *engine.Orchestrator
}

// newSession loads the configuration and builds the logger. Logs go to
// the command's stderr; --verbose forces debug level.
func newSession(opts *RootOptions, cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if opts.Verbose {
		level = slog.LevelDebug
	}
	return &session{cfg: cfg, logger: newLogger(cmd.ErrOrStderr(), level)}, nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// databasePath returns override when set, else the configured database.
func (s *session) databasePath(override string) string {
	if override != "" {
		return override
	}
	return s.cfg.Store.Database
}

// registry builds the linked-account registry from the configured CUE
// declarations directory.
func (s *session) registry() *accounts.Registry {
	return accounts.NewRegistry(accounts.CUEResolver{Dir: s.cfg.Accounts.Dir}, accounts.WithLogger(s.logger))
}

// openStore opens (creating if needed) the SQLite store.
func (s *session) openStore(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return WrapExitError(ExitCommandError, "failed to create database directory", err)
		}
	}
	s.logger.Debug("opening database", "path", path)
	st, err := store.Open(path)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("failed to open database %s", path), err)
	}
	s.store = st
	return nil
}

// openOrchestrator opens the store and wires the orchestrator with the
// configured fan-out and photo resolution.
func (s *session) openOrchestrator(dbOverride string) error {
	if err := s.openStore(s.databasePath(dbOverride)); err != nil {
		return err
	}
	s.orch = engine.New(s.store, s.registry(),
		engine.WithLogger(s.logger),
		engine.WithFanout(s.cfg.Engine.Fanout),
		engine.WithHighResPhotos(s.cfg.Engine.PhotoHighRes),
	)
	return nil
}

// Close releases the store.
func (s *session) Close() {
	if s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Error("error closing database", "error", err)
	}
}
