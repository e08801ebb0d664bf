// Package cli comandos de administración (imprentactl): migraciones y alta de administradores.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd arma el árbol de comandos.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "imprentactl",
		Short: "Herramientas de administración de Imprenta Camiri",
		Long: `imprentactl opera sobre la misma base de datos que la API.
Lee la configuración de las variables de entorno (o de un archivo .env).`,
		SilenceUsage: true,
	}
	root.AddCommand(newMigrateCmd(), newCreateAdminCmd())
	return root
}

// Execute corre el comando raíz y termina el proceso con código 1 si falla.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
