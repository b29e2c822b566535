package commands

import (
	"github.com/spf13/cobra"

	"informant/internal/di"
	"informant/internal/structures"
)

func NewServeCommand() *cobra.Command {
	flags := &structures.CliFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service",
		Long: `Run informant as a service. The Workrave exports are loaded at startup and
reloaded on workrave.reloadInterval; the loaded history is served as JSON and
snapshotted to persistence.filePath.

Settings come from the YAML file given by --config and INFORMANT_* environment
variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := di.InitApp(flags)
			if err != nil {
				return err
			}
			return app.Run()
		},
	}

	cmd.Flags().StringVarP(&flags.ConfigPath, "config", "c", "config.yaml", "Path to the config file")
	cmd.Flags().BoolVarP(&flags.DebugMode, "debug", "d", false, "Mirror logs to the console")

	return cmd
}
