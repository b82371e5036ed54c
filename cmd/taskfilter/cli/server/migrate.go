package server

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/mwantia/taskfilter/internal/agent"
	"github.com/mwantia/taskfilter/pkg/db/store"
	"github.com/mwantia/taskfilter/pkg/log"
	"github.com/spf13/cobra"

	config "github.com/mwantia/taskfilter/internal/config/server"
)

func NewMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), "migrate", func(s store.TodoStore, logger log.LoggerService) error {
				if err := s.Migrate(cmd.Context()); err != nil {
					return fmt.Errorf("failed to migrate store: %w", err)
				}
				logger.Info("Store is up to date")
				return nil
			})
		},
	}

	cmd.AddCommand(newMigrateStatusCommand())
	cmd.AddCommand(newMigrateRollbackCommand())

	return cmd
}

func newMigrateStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "List migrations and whether they are applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), "migrate", func(s store.TodoStore, _ log.LoggerService) error {
				statuses, err := s.MigrationStatus(cmd.Context())
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "VERSION\tAPPLIED\tDESCRIPTION")
				for _, status := range statuses {
					fmt.Fprintf(w, "%d\t%t\t%s\n", status.Version, status.Applied, status.Description)
				}
				return w.Flush()
			})
		},
	}
}

func newMigrateRollbackCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rollback",
		Short: "Revert the last applied migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), "migrate", func(s store.TodoStore, logger log.LoggerService) error {
				if err := s.Rollback(cmd.Context()); err != nil {
					return err
				}
				logger.Info("Reverted the last migration")
				return nil
			})
		},
	}
}

// withStore connects to the configured store, runs fn and closes the store.
func withStore(ctx context.Context, name string, fn func(s store.TodoStore, logger log.LoggerService) error) error {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		return fmt.Errorf("failed to load server configuration: %w", err)
	}

	logger := log.NewLoggerService(name, cfg.Log)
	compiler, err := agent.NewCompiler(cfg.Filter)
	if err != nil {
		return err
	}

	s, err := agent.NewStore(cfg.Database, compiler, logger.Named("database"))
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.Database.Type, err)
	}
	defer s.Close()

	if err := s.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to %s store: %w", cfg.Database.Type, err)
	}
	return fn(s, logger)
}
