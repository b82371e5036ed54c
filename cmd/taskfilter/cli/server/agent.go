package server

import (
	"fmt"

	"github.com/mwantia/taskfilter/internal/agent"
	"github.com/spf13/cobra"

	config "github.com/mwantia/taskfilter/internal/config/server"
)

func NewAgentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Start the taskfilter API agent",
		Long: `Start the taskfilter API agent.

The agent opens and migrates the configured todo store and serves the
filterable todo API until it receives an interrupt.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadServerConfig()
			if err != nil {
				return fmt.Errorf("failed to load server configuration: %w", err)
			}

			return agent.NewAgent(cfg).Serve(cmd.Context())
		},
	}

	return cmd
}
