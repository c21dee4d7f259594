package inventory

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// Repositories agrupa los repositorios atados a una misma transacción.
type Repositories struct {
	Products    repository.ProductRepository
	Customers   repository.CustomerRepository
	Sales       repository.SaleRepository
	Supplies    repository.SupplyRepository
	Identifiers repository.IdentifierRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit. Garantiza atomicidad para el motor de inventario.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repositories) error) error
}

// PhotoStore almacén de fotos de producto, direccionado por producto y ranura (1..3).
type PhotoStore interface {
	Put(ctx context.Context, productID string, slot int, data []byte) (string, error)
	Get(ctx context.Context, ref string) ([]byte, error)
	Delete(ctx context.Context, ref string) error
}

// AdminSessions valida el token de sesión de un administrador.
type AdminSessions interface {
	ValidateSession(token string) (adminID string, ok bool)
}
