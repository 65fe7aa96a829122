package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/zulandar/vanops/internal/config"
	"github.com/zulandar/vanops/internal/db"
	"github.com/zulandar/vanops/internal/logs"
	"github.com/zulandar/vanops/internal/ops"
	"github.com/zulandar/vanops/internal/store"
)

// app is everything a command needs once the config is loaded and the
// storage slot is open.
type app struct {
	cfg     *config.Config
	slots   *db.Slots
	gateway *store.Gateway
	session *ops.Session
	log     zerolog.Logger
	closers []io.Closer
}

// configPath resolves the --config flag, falling back to the per-user
// config directory.
func configPath(cmd *cobra.Command) (string, error) {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		return path, nil
	}
	dir, err := config.DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, config.FileName), nil
}

// openApp loads (or creates) the config, starts logging, connects to the
// configured database and loads the stored state.
func openApp(cmd *cobra.Command) (*app, error) {
	path, err := configPath(cmd)
	if err != nil {
		return nil, err
	}
	cfg, _, err := config.LoadOrCreate(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, logCloser, err := logs.New(logs.Options{
		File:       cfg.Log.File,
		Console:    cfg.Log.Console,
		ConsoleOut: cmd.ErrOrStderr(),
		Level:      cfg.Log.Level,
	})
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, log: log, closers: []io.Closer{logCloser}}

	gormDB, err := db.Connect(cfg.Storage)
	if err != nil {
		a.Close()
		return nil, err
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		a.closers = append(a.closers, sqlDB)
	}
	if err := db.AutoMigrate(gormDB); err != nil {
		a.Close()
		return nil, err
	}

	a.slots = db.NewSlots(gormDB)
	a.gateway = store.New(a.slots, cfg.Storage.Key, cfg.AppName, log)
	a.session, err = ops.Open(a.gateway, log)
	if err != nil {
		a.Close()
		return nil, err
	}
	log.Debug().Str("config", path).Str("driver", cfg.Storage.Driver).Msg("opened")
	return a, nil
}

// Close releases the database and log file, newest first.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i].Close()
	}
}

// withApp opens the app, runs fn and closes it again.
func withApp(cmd *cobra.Command, fn func(a *app) error) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}
