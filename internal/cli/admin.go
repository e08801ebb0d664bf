package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/imprentacamiri/imprenta-api/internal/application/auth"
	"github.com/imprentacamiri/imprenta-api/internal/infrastructure/postgres"
	"github.com/imprentacamiri/imprenta-api/pkg/config"
)

func newCreateAdminCmd() *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "crear-admin",
		Short: "Crea un usuario administrador si el email no existe",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if email == "" || password == "" {
				return errors.New("--email y --contrasena son obligatorios")
			}
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

			uc := auth.NewAuthUseCase(postgres.NewUserRepository(pool), nil, nil,
				auth.JWTConfig{Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer},
				auth.ResetConfig{}, nil)
			created, err := uc.EnsureAdmin(ctx, name, email, password)
			if err != nil {
				return err
			}
			if !created {
				fmt.Fprintf(cmd.OutOrStdout(), "%s ya está registrado; no se modificó\n", email)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "administrador %s creado\n", email)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "nombre", "Administrador", "nombre visible")
	cmd.Flags().StringVar(&email, "email", "", "email de acceso")
	cmd.Flags().StringVar(&password, "contrasena", "", "contraseña (8+ caracteres, una mayúscula y un número)")
	return cmd
}
