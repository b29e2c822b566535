// Package cli provides the command-line interface for informant.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"informant/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	if err := NewRootCommand().Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "informant",
		Short: "Read Workrave activity statistics",
		Long: `informant reads the statistics Workrave keeps in its historystats and
todaystats files and turns them into per-day records.

Use it once from the command line (show, validate, export) or run it as a
small HTTP service that reloads the files periodically (serve).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewShowCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewExportCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
