// Package main provides the rhymebook CLI entry point.
// rhymebook is the command-line interface for the rhymebook lyrics
// dictionary: it seeds the dictionary from a remote source and renders
// annotated examples.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rhymebook/rhymebook-cli/cmd"
	"github.com/rhymebook/rhymebook-cli/pkg/buildinfo"
)

// rootCmd is the base command for the rhymebook CLI.
var rootCmd = &cobra.Command{
	Use:   "rhymebook",
	Short: "rhymebook - a lyrics-annotation dictionary CLI",
	Long: `rhymebook manages a dictionary of rap lexicon: senses, artists, places,
songs, lyric examples, and the annotations that link them together.

Configuration is read from ~/.rhymebook/config.yaml (or $RHYMEBOOK_CONFIG_DIR)
with RHYMEBOOK_* environment variables layered on top.

Common workflows:
  # Apply the schema to a configured database
  rhymebook db migrate

  # Pull ten random senses from the remote source
  rhymebook seed sense --count 10

  # Render a stored example with its annotation markup
  rhymebook render 42`,
	Version:       buildinfo.String(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(cmd.NewSeedCommand())
	rootCmd.AddCommand(cmd.NewRenderCommand())
	rootCmd.AddCommand(cmd.NewDbCommand())
	rootCmd.AddCommand(cmd.NewVersionCommand())
}

func main() {
	// Ctrl-C cancels the command context so in-flight fetches and
	// database calls unwind cleanly.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
