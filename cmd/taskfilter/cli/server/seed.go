package server

import (
	"fmt"
	"time"

	"github.com/mwantia/taskfilter/internal/todo"
	"github.com/mwantia/taskfilter/pkg/db/store"
	"github.com/mwantia/taskfilter/pkg/log"
	"github.com/spf13/cobra"
)

func NewSeedCommand() *cobra.Command {
	var (
		organization string
		count        int
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert demo todos",
		Long: `Insert deterministic demo todos for one organization into the
configured store. Migrations are applied first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withStore(ctx, "seed", func(s store.TodoStore, logger log.LoggerService) error {
				if err := s.Migrate(ctx); err != nil {
					return fmt.Errorf("failed to migrate store: %w", err)
				}
				if err := todo.Seed(ctx, s, organization, count, time.Now()); err != nil {
					return err
				}

				logger.Info("Inserted %d demo todos for '%s'", count, organization)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&organization, "organization", "demo", "organization the todos belong to")
	cmd.Flags().IntVar(&count, "count", 50, "number of todos to insert")

	return cmd
}
