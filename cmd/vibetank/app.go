package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vibetank/vibetank/internal/config"
	"github.com/vibetank/vibetank/internal/content"
	"github.com/vibetank/vibetank/internal/db"
	"github.com/vibetank/vibetank/internal/localstore"
	"github.com/vibetank/vibetank/internal/observability"
	"github.com/vibetank/vibetank/internal/storage"
)

// app holds the wired components shared by every subcommand.
type app struct {
	cfg        config.Config
	logger     *zap.Logger
	local      *localstore.Store
	remote     *db.DB
	store      *content.Store
	passphrase *config.Passphrase
}

// newApp loads configuration and wires storage, the content store and the
// passphrase. A configured but unreachable remote database is logged and
// the app continues on the local store alone.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.Verbose = true
	}

	logger, err := observability.NewLogger(cfg.Verbose)
	if err != nil {
		return nil, err
	}

	local, err := localstore.Open(cfg.LocalStorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	a := &app{cfg: cfg, logger: logger, local: local}

	var remote storage.RemoteStore
	remoteConfigured := cfg.IsRemoteConfigured()
	if remoteConfigured {
		database, err := connectRemote(ctx, cfg)
		if err != nil {
			logger.Warn("remote database unavailable, using local store only", zap.Error(err))
		} else {
			a.remote = database
			remote = database
		}
	}

	adapter := storage.NewAdapter(remote, local, remoteConfigured && a.remote != nil, logger)
	a.store = content.New(adapter, content.Options{Logger: logger})

	hasher, err := config.NewPasswordConfig()
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	a.passphrase = config.NewPassphrase(cfg.AdminPassword, local, hasher)

	return a, nil
}

func connectRemote(ctx context.Context, cfg config.Config) (*db.DB, error) {
	database, err := db.Connect(ctx, cfg.RemoteDatabaseURL, cfg.RemoteDatabaseKey)
	if err != nil {
		return nil, err
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

// Close releases the stores and flushes the logger.
func (a *app) Close() {
	if a.remote != nil {
		a.remote.Close()
	}
	if err := a.local.Close(); err != nil {
		a.logger.Warn("failed to close local store", zap.Error(err))
	}
	_ = a.logger.Sync()
}
