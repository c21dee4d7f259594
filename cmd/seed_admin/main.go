// seed_admin aprovisiona administradores del panel. El motor de inventario solo los lee.
//
// Uso: go run ./cmd/seed_admin --id admin --password-env ADMIN_PASSWORD
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/infrastructure/database"
	"github.com/jhoicas/tienda-api/pkg/config"
)

var (
	adminID     string
	password    string
	passwordEnv string
	bcryptCost  int
)

// rootCmd crea un administrador con el secreto hasheado con bcrypt.
var rootCmd = &cobra.Command{
	Use:   "seed_admin",
	Short: "Crear un administrador del panel",
	Long: `Crea un administrador en la base configurada (DB_DRIVER, SQLITE_PATH, DATABASE_URL...).

El secreto se toma de --password o, preferiblemente, de la variable indicada en --password-env
para que no quede en el historial del shell.`,
	SilenceUsage: true,
	RunE:         runSeedAdmin,
}

func init() {
	rootCmd.Flags().StringVar(&adminID, "id", "", "identificador del administrador")
	rootCmd.Flags().StringVar(&password, "password", "", "secreto en claro")
	rootCmd.Flags().StringVar(&passwordEnv, "password-env", "", "variable de entorno con el secreto")
	rootCmd.Flags().IntVar(&bcryptCost, "cost", 0, "costo bcrypt (0 = por defecto)")
	_ = rootCmd.MarkFlagRequired("id")
	rootCmd.MarkFlagsMutuallyExclusive("password", "password-env")
}

func runSeedAdmin(cmd *cobra.Command, _ []string) error {
	secret := password
	if passwordEnv != "" {
		secret = os.Getenv(passwordEnv)
	}
	id := strings.TrimSpace(adminID)
	if id == "" || secret == "" {
		return fmt.Errorf("--id y un secreto no vacío son requeridos")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	ctx := context.Background()
	backend, err := database.Open(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer backend.Close()

	hash, err := auth.HashSecret(secret, bcryptCost)
	if err != nil {
		return err
	}
	if err := backend.Admins.Create(ctx, &entity.Admin{ID: id, SecretHash: hash}); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return fmt.Errorf("el administrador %q ya existe", id)
		}
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "administrador %q creado (%s)\n", id, backend.Driver)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
