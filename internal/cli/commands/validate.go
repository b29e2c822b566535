package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"informant/internal/workrave"
)

func NewValidateCommand() *cobra.Command {
	var location string

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check that a file is a supported Workrave export",
		Long: `Validate a Workrave statistics export without printing its contents.

Checks:
  - The first line is the WorkRaveStats 4 header
  - Every date and stats record decodes
  - Date and stats records pair up

Exits 0 when the file is a valid export and 1 otherwise.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args[0], location)
		},
	}
	cmd.Flags().StringVar(&location, "location", "", "IANA zone the timestamps are recorded in (default: local)")
	return cmd
}

func runValidate(cmd *cobra.Command, path, location string) error {
	ExitCode = exitOK
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Validating %s...\n", path)
	if !workrave.IsFileValid(path) {
		fmt.Fprintf(out, "\nNot a %s export\n", workrave.HeaderV4)
		ExitCode = exitNoData
		return nil
	}

	loc, err := resolveLocation(location)
	if err != nil {
		return err
	}
	skipped := 0
	loader := workrave.NewLoader(
		workrave.WithLocation(loc),
		workrave.WithDiagnostics(func(workrave.Diagnostic) { skipped++ }),
	)
	store, err := loader.LoadFile(path)
	if err != nil && !errors.Is(err, workrave.ErrNoData) {
		fmt.Fprintf(out, "\nHeader valid, records invalid: %v\n", err)
		ExitCode = exitNoData
		return nil
	}

	fmt.Fprintf(out, "\nValid %s export\n", workrave.HeaderV4)
	if store != nil {
		fmt.Fprintf(out, "  Days:          %d\n", store.Len())
		fmt.Fprintf(out, "  Missing days:  %d\n", len(store.MissingOrdinals()))
	}
	fmt.Fprintf(out, "  Skipped lines: %d\n", skipped)
	return nil
}
