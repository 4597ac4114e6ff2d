package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rhymebook/rhymebook-cli/config"
	"github.com/rhymebook/rhymebook-cli/pkg/buildinfo"
)

// Version command flags
var versionOutput string

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Print the version, commit hash, and build time of the rhymebook CLI.

Examples:
  rhymebook version
  rhymebook version --output json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format := config.OutputFormat(versionOutput)
			if versionOutput == "" {
				format = config.OutputFormatText
			}
			if !format.IsValid() {
				return fmt.Errorf("invalid output format %q", versionOutput)
			}
			info := buildinfo.Get()
			return printResult(format, info, func() string {
				return fmt.Sprintf("rhymebook %s\n  commit:     %s\n  built:      %s\n  go version: %s",
					info.Version, info.Commit, info.BuildTime, info.GoVersion)
			})
		},
	}

	cmd.Flags().StringVarP(&versionOutput, "output", "o", "", "Output format: text, json, yaml")

	return cmd
}
