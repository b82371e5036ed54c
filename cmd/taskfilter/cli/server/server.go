package server

import "github.com/spf13/cobra"

func NewServerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Run and manage the taskfilter agent",
	}

	cmd.AddCommand(NewAgentCommand())
	cmd.AddCommand(NewConfigCommand())
	cmd.AddCommand(NewMigrateCommand())
	cmd.AddCommand(NewSeedCommand())

	return cmd
}
