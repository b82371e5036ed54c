package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func NewRootCommand(version VersionInfo) *cobra.Command {
	var path string

	info = version

	cmd := &cobra.Command{
		Use:           "taskfilter",
		Short:         "Filterable, tenant-scoped todo API",
		Long:          "Serves todo lists that can be narrowed with typed, URL-encoded filters and compiles those filters into SQL for SQLite or PostgreSQL.",
		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(path)
		},
	}

	cmd.PersistentFlags().StringVar(&path, "config", "", "config file (default is ./config.yaml)")
	cmd.PersistentFlags().Bool("no-color", false, "Disables colored command output")
	cmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	viper.BindPFlag("log.level", cmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.no_color", cmd.PersistentFlags().Lookup("no-color"))

	cmd.Version = fmt.Sprintf("%s.%s", version.Version, version.Commit)

	return cmd
}
