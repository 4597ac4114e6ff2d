package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/rhymebook/rhymebook-cli/config"
	"github.com/rhymebook/rhymebook-cli/pkg/db"
	"github.com/rhymebook/rhymebook-cli/pkg/dictionary"
	"github.com/rhymebook/rhymebook-cli/pkg/ingest"
	"github.com/rhymebook/rhymebook-cli/pkg/logging"
)

// Seed command flags
var (
	seedCount int
	seedOwner string
)

// SeedDeps holds the dependencies for the seed command.
type SeedDeps struct {
	LoadConfig func() (*config.CLIConfig, error)
	OpenStore  func(context.Context, *config.CLIConfig, logging.Logger) (*storeHandle, error)
	NewFetcher func(*config.CLIConfig, logging.Logger) ingest.Fetcher
}

// DefaultSeedDeps returns the default dependencies for production use.
func DefaultSeedDeps() *SeedDeps {
	return &SeedDeps{
		LoadConfig: config.LoadConfig,
		OpenStore:  openStore,
		NewFetcher: func(cfg *config.CLIConfig, logger logging.Logger) ingest.Fetcher {
			return ingest.NewHTTPFetcher(cfg.SourceURL, cfg.SourceTimeout, logger)
		},
	}
}

// seedSummary is the machine-readable outcome of a seed run.
type seedSummary struct {
	Kind      string           `json:"kind" yaml:"kind"`
	Requested int              `json:"requested" yaml:"requested"`
	Created   int              `json:"created" yaml:"created"`
	Existing  int              `json:"existing" yaml:"existing"`
	Skipped   int              `json:"skipped" yaml:"skipped"`
	Results   []*ingest.Result `json:"results" yaml:"results"`
}

// NewSeedCommand creates the seed command.
func NewSeedCommand() *cobra.Command {
	deps := DefaultSeedDeps()

	cmd := &cobra.Command{
		Use:   "seed <kind>",
		Short: "Ingest random records from the remote dictionary source",
		Long: `Ingest random records of one entity kind from the remote dictionary
source into the configured store.

Kinds: sense, artist, place, song, example.

Each fetched record is projected to the kind's field set, stamped with the
owner, and persisted through get-or-create, so re-seeding the same records
never duplicates them. Embedded sub-entities (an artist's origin place, a
song's artist lists) are resolved and persisted first.

A fetch failure skips that record and continues; a malformed record (missing
name, bad date) aborts the run.

Examples:
  # Ingest one random sense
  rhymebook seed sense

  # Ingest ten random songs for a specific owner
  rhymebook seed song --count 10 --owner ejlarsen`,
		Example: `  rhymebook seed sense
  rhymebook seed song --count 10
  rhymebook seed example --owner ejlarsen`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), deps, args[0])
		},
	}

	cmd.Flags().IntVarP(&seedCount, "count", "n", 1, "Number of records to ingest")
	cmd.Flags().StringVar(&seedOwner, "owner", "", "Owner to create records under (default: from config)")

	return cmd
}

// runSeed executes the seed command.
func runSeed(ctx context.Context, deps *SeedDeps, kindArg string) error {
	cfg, err := deps.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	if seedCount < 1 {
		return fmt.Errorf("--count must be at least 1")
	}

	owner := cfg.Owner
	if seedOwner != "" {
		owner = seedOwner
	}

	logger := newLogger(cfg)
	kind := dictionary.EntityKind(strings.ToLower(kindArg))

	handle, err := deps.OpenStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer handle.Close()

	registry := prometheus.NewRegistry()
	if handle.Pool != nil {
		registry.MustRegister(db.NewPoolStatsCollector(handle.Pool, "rhymebook"))
	}
	metrics := ingest.NewMetrics(registry)
	pipeline := ingest.New(handle.Store, deps.NewFetcher(cfg, logger), logger, metrics)

	summary := seedSummary{Kind: string(kind), Requested: seedCount}
	for i := 0; i < seedCount; i++ {
		result, err := pipeline.Ingest(ctx, kind, owner)
		if err != nil {
			return fmt.Errorf("ingesting %s: %w", kind, err)
		}
		if result == nil {
			summary.Skipped++
			continue
		}
		if result.Created {
			summary.Created++
		} else {
			summary.Existing++
		}
		summary.Results = append(summary.Results, result)
	}

	return printResult(cfg.OutputFormat, summary, func() string {
		var b strings.Builder
		fmt.Fprintf(&b, "Seeded %s: %d created, %d already present, %d skipped",
			summary.Kind, summary.Created, summary.Existing, summary.Skipped)
		for _, r := range summary.Results {
			fmt.Fprintf(&b, "\n  %s", describeResult(r))
		}
		return b.String()
	})
}

// describeResult renders one ingestion result as a text line.
func describeResult(r *ingest.Result) string {
	label := ""
	switch {
	case r.Sense != nil:
		label = r.Sense.Headword
	case r.Artist != nil:
		label = r.Artist.Name
	case r.Place != nil:
		label = r.Place.FullName
	case r.Song != nil:
		label = fmt.Sprintf("%s (%s)", r.Song.Title, r.Song.Album)
	case r.Example != nil:
		label = r.Example.Text
	}
	state := "exists"
	if r.Created {
		state = "created"
	}
	return fmt.Sprintf("%s %q [%s]", r.Ref.String(), label, state)
}
