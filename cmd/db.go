package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rhymebook/rhymebook-cli/config"
	"github.com/rhymebook/rhymebook-cli/pkg/db"
	"github.com/rhymebook/rhymebook-cli/pkg/dictionary/store"
	"github.com/rhymebook/rhymebook-cli/pkg/logging"
)

// DbDeps holds the dependencies for database commands.
type DbDeps struct {
	LoadConfig func() (*config.CLIConfig, error)
	OpenStore  func(context.Context, *config.CLIConfig, logging.Logger) (*storeHandle, error)
}

// DefaultDbDeps returns the default dependencies for production use.
func DefaultDbDeps() *DbDeps {
	return &DbDeps{
		LoadConfig: config.LoadConfig,
		OpenStore:  openStore,
	}
}

// NewDbCommand creates the root db command with all subcommands.
func NewDbCommand() *cobra.Command {
	deps := DefaultDbDeps()

	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database management commands",
		Long: `Database management commands for rhymebook.

The db command connects directly to the configured PostgreSQL database.
Connection settings come from the database section of the config file or
the RHYMEBOOK_DB_* environment variables.

Examples:
  # Check database connectivity
  rhymebook db ping

  # Apply the dictionary schema migrations
  rhymebook db migrate`,
		Aliases: []string{"database"},
	}

	cmd.AddCommand(newDbPingCommand(deps))
	cmd.AddCommand(newDbMigrateCommand(deps))

	return cmd
}

// newDbPingCommand creates the 'db ping' subcommand.
func newDbPingCommand(deps *DbDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check database connectivity",
		Long: `Ping the configured PostgreSQL database and report pool statistics.

Examples:
  rhymebook db ping
  rhymebook db ping --output json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDbPing(cmd.Context(), deps)
		},
	}
}

// newDbMigrateCommand creates the 'db migrate' subcommand.
func newDbMigrateCommand(deps *DbDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the dictionary schema migrations",
		Long: `Apply pending schema migrations to the configured database.

Migrations are embedded in the binary and executed in alphabetical order,
each inside its own transaction. Applied migrations are tracked in the
schema_migrations table and skipped on later runs.

Examples:
  rhymebook db migrate`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDbMigrate(cmd.Context(), deps)
		},
	}
}

// runDbPing executes the db ping command.
func runDbPing(ctx context.Context, deps *DbDeps) error {
	cfg, handle, err := requireDatabase(ctx, deps)
	if err != nil {
		return err
	}
	defer handle.Close()

	status := db.CheckHealth(ctx, handle.Pool)
	if err := printResult(cfg.OutputFormat, status, func() string {
		if !status.Healthy {
			return fmt.Sprintf("unhealthy: %s", status.Error)
		}
		return fmt.Sprintf("ok: %s (%d conns, %d idle)",
			status.Latency, status.TotalConn, status.IdleConn)
	}); err != nil {
		return err
	}
	if !status.Healthy {
		return fmt.Errorf("database is unhealthy")
	}
	return nil
}

// runDbMigrate executes the db migrate command.
func runDbMigrate(ctx context.Context, deps *DbDeps) error {
	cfg, handle, err := requireDatabase(ctx, deps)
	if err != nil {
		return err
	}
	defer handle.Close()

	pg, ok := handle.Store.(*store.PostgresStore)
	if !ok {
		return fmt.Errorf("migrations require a PostgreSQL store")
	}

	result, err := pg.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	return printResult(cfg.OutputFormat, result, func() string {
		if len(result.Applied) == 0 {
			return fmt.Sprintf("No pending migrations (%d already applied).", len(result.Skipped))
		}
		return fmt.Sprintf("Applied %d migration(s):\n  %s",
			len(result.Applied), strings.Join(result.Applied, "\n  "))
	})
}

// requireDatabase loads config and opens the store, failing when no
// database is configured: db commands never fall back to memory.
func requireDatabase(ctx context.Context, deps *DbDeps) (*config.CLIConfig, *storeHandle, error) {
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("loading configuration: %w", err)
	}
	if !cfg.HasDatabase() {
		return nil, nil, fmt.Errorf("no database configured: set the database section in the config file or RHYMEBOOK_DB_* environment variables")
	}

	handle, err := deps.OpenStore(ctx, cfg, newLogger(cfg))
	if err != nil {
		return nil, nil, err
	}
	return cfg, handle, nil
}
