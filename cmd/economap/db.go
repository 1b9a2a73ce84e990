package main

import (
	"context"
	"fmt"
	"os"

	"economap/internal/config"
	"economap/internal/ctxlog"
	"economap/internal/store"
	"economap/internal/store/postgres"
	"economap/internal/store/sqlite"
)

const defaultConfigPath = "economap.yaml"

// loadProject reads the config and returns a context carrying the
// configured logger. Logs go to stderr so stdout stays free for output and
// the stdio transport.
func loadProject() (context.Context, *config.ProjectConfig, error) {
	cfg, err := config.LoadProjectConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	logger, err := ctxlog.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, err
	}
	return ctxlog.WithLogger(context.Background(), logger), cfg, nil
}

func openDB(ctx context.Context, cfg *config.ProjectConfig) (store.Store, error) {
	switch cfg.Database.Driver {
	case config.DriverSQLite:
		return sqlite.New(ctx, cfg.Database.DSN)
	case config.DriverPostgres:
		return postgres.New(ctx, cfg.Database.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.Database.Driver)
	}
}
