package database

import (
	"context"
	"fmt"

	"github.com/jhoicas/tienda-api/internal/application/inventory"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/internal/infrastructure/postgres"
	"github.com/jhoicas/tienda-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/tienda-api/pkg/config"
)

// Backend agrupa los adaptadores de persistencia del driver configurado.
// Los repositorios van sobre el pool; las operaciones de escritura pasan por TxRunner.
type Backend struct {
	Driver   string
	TxRunner inventory.TxRunner
	Products repository.ProductRepository
	Admins   repository.AdminRepository
	close    func()
}

// Open abre la base según cfg.Driver y aplica el esquema.
func Open(ctx context.Context, cfg config.DBConfig) (*Backend, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		return &Backend{
			Driver:   cfg.Driver,
			TxRunner: postgres.NewTxRunner(pool),
			Products: postgres.NewProductRepository(pool),
			Admins:   postgres.NewAdminRepository(pool),
			close:    pool.Close,
		}, nil
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("conexión a SQLite: %w", err)
		}
		return &Backend{
			Driver:   cfg.Driver,
			TxRunner: sqlite.NewTxRunner(db),
			Products: sqlite.NewProductRepository(db),
			Admins:   sqlite.NewAdminRepository(db),
			close:    func() { _ = db.Close() },
		}, nil
	default:
		return nil, fmt.Errorf("driver de base de datos no soportado: %q", cfg.Driver)
	}
}

// Close libera las conexiones.
func (b *Backend) Close() {
	if b.close != nil {
		b.close()
	}
}
