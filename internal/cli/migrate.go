package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/imprentacamiri/imprenta-api/internal/infrastructure/postgres"
	"github.com/imprentacamiri/imprenta-api/pkg/config"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrar [up|down|status]",
		Short:     "Aplica, revierte o lista las migraciones de PostgreSQL",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{postgres.MigrateUp, postgres.MigrateDown, postgres.MigrateStatus},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			pool, err := postgres.NewPool(ctx, cfg.DB)
			if err != nil {
				return fmt.Errorf("conexión a PostgreSQL: %w", err)
			}
			defer pool.Close()

			if err := postgres.Migrate(ctx, pool, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migraciones: %s completado\n", args[0])
			return nil
		},
	}
}
