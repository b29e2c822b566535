package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"informant/internal/output"
	"informant/internal/services"
)

type showOptions struct {
	sourceOptions
	Metrics []string
	Output  string
	Verbose bool
	Quiet   bool
}

func NewShowCommand() *cobra.Command {
	opts := &showOptions{}

	cmd := &cobra.Command{
		Use:   "show <historystats>",
		Short: "Print the days recorded in a Workrave export",
		Long: `Load a historystats export, optionally merge a todaystats export over it,
and print a summary, every recorded day, the requested metric series and the
days missing between the first and last record.

Lines the loader does not recognise are skipped and reported on stderr.

Exit codes:
  0  history loaded
  1  no data (missing file or unsupported header)
  2  the export could not be parsed, or a usage error`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Today, "today", "", "todaystats export merged over the history")
	cmd.Flags().StringVar(&opts.Location, "location", "", "IANA zone the timestamps are recorded in (default: local)")
	cmd.Flags().StringVar(&opts.LogLevel, "log-level", "warn", "stderr log level")
	cmd.Flags().StringSliceVarP(&opts.Metrics, "metric", "m", nil, "Metric series to print (repeatable, or 'all')")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json|yaml)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "List skipped lines in text output")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Print the summary only")

	return cmd
}

func runShow(cmd *cobra.Command, args []string, opts *showOptions) error {
	ExitCode = exitOK

	metrics, err := parseMetrics(opts.Metrics)
	if err != nil {
		return err
	}
	formatter, err := createFormatter(opts.Output, output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	})
	if err != nil {
		return err
	}

	service, load, err := loadHistory(args[0], opts.sourceOptions, cmd.ErrOrStderr())
	if service == nil {
		return err
	}

	report := output.NewReport(load, service, metrics)
	if ferr := formatter.Format(cmd.Context(), report, cmd.OutOrStdout()); ferr != nil {
		return fmt.Errorf("formatting output: %w", ferr)
	}

	switch {
	case err != nil:
		ExitCode = exitFailure
	case load.State == services.StateNoData:
		ExitCode = exitNoData
	}
	return nil
}

func createFormatter(format string, opts output.FormatOptions) (output.Formatter, error) {
	switch format {
	case "text":
		return output.NewTextFormatter(opts), nil
	case "json":
		return output.NewJSONFormatter(opts), nil
	case "yaml":
		return output.NewYAMLFormatter(opts), nil
	default:
		return nil, fmt.Errorf("unknown output format: %s (valid: text, json, yaml)", format)
	}
}
