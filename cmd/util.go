// Package cmd provides CLI commands for the rhymebook tool.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"gopkg.in/yaml.v3"

	"github.com/rhymebook/rhymebook-cli/config"
	"github.com/rhymebook/rhymebook-cli/pkg/db"
	"github.com/rhymebook/rhymebook-cli/pkg/dictionary/store"
	"github.com/rhymebook/rhymebook-cli/pkg/logging"
)

// storeHandle bundles a Store with the resources behind it.
type storeHandle struct {
	Store store.Store

	// Pool is nil when the in-memory store is in use.
	Pool *pgxpool.Pool
}

// Close releases the backing connection pool, if any.
func (h *storeHandle) Close() {
	if h.Pool != nil {
		h.Pool.Close()
	}
}

// openStore connects the configured backend: PostgreSQL when a database
// section is present, otherwise the in-memory store. Memory-backed runs
// persist nothing beyond the process; commands warn so a missing database
// section is not mistaken for durable ingestion.
func openStore(ctx context.Context, cfg *config.CLIConfig, logger logging.Logger) (*storeHandle, error) {
	if !cfg.HasDatabase() {
		logger.Warn("no database configured, using in-memory store (records are discarded on exit)")
		return &storeHandle{Store: store.NewMemoryStore(store.DefaultOptions())}, nil
	}

	pool, err := db.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return &storeHandle{
		Store: store.NewPostgresStore(pool, store.DefaultOptions(), logger),
		Pool:  pool,
	}, nil
}

// newLogger builds the command logger from config. Debug runs get console
// output at debug level; everything else logs warnings and up so command
// output stays clean.
func newLogger(cfg *config.CLIConfig) logging.Logger {
	level := logging.LevelWarn
	if cfg.Debug {
		level = logging.LevelDebug
	}
	return logging.NewLogger(&logging.Config{
		Level:       level,
		ServiceName: "rhymebook",
		JSONFormat:  false,
		Output:      os.Stderr,
	})
}

// printResult writes v to stdout in the requested format. The text
// rendering is supplied by the caller; json and yaml marshal v directly.
func printResult(format config.OutputFormat, v interface{}, text func() string) error {
	switch format {
	case config.OutputFormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling output: %w", err)
		}
		fmt.Println(string(data))
	case config.OutputFormatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshaling output: %w", err)
		}
		fmt.Print(string(data))
	default:
		fmt.Println(text())
	}
	return nil
}
