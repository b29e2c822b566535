package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"informant/internal/export"
	"informant/internal/services"
)

type exportOptions struct {
	sourceOptions
	Format string
	Out    string
}

func NewExportCommand() *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export <historystats>",
		Short: "Write the recorded days to a csv, parquet or sqlite file",
		Long: `Load a historystats export, optionally merge a todaystats export over it,
and write one row per day to --out.

csv and parquet files are replaced. sqlite exports upsert into a days table,
so exporting again updates the days already there and keeps the others.

Exits 1 without writing when there is no data.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Today, "today", "", "todaystats export merged over the history")
	cmd.Flags().StringVar(&opts.Location, "location", "", "IANA zone the timestamps are recorded in (default: local)")
	cmd.Flags().StringVar(&opts.LogLevel, "log-level", "warn", "stderr log level")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "csv", "Export format (csv|parquet|sqlite)")
	cmd.Flags().StringVar(&opts.Out, "out", "", "Destination file")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func runExport(cmd *cobra.Command, args []string, opts *exportOptions) error {
	ExitCode = exitOK

	exporter, err := export.NewExporter(opts.Format)
	if err != nil {
		return err
	}

	service, load, err := loadHistory(args[0], opts.sourceOptions, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if load.State == services.StateNoData {
		fmt.Fprintf(cmd.ErrOrStderr(), "No data in %s, nothing exported\n", args[0])
		ExitCode = exitNoData
		return nil
	}

	days := service.GetDays()
	if err := exporter.Export(cmd.Context(), days, opts.Out); err != nil {
		return fmt.Errorf("exporting to %s: %w", opts.Out, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d days to %s (%s)\n", len(days), opts.Out, exporter.Name())
	return nil
}
