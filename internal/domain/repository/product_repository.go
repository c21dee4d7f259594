package repository

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	// GetByID devuelve nil, nil si el producto no existe.
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	ListAvailable(ctx context.Context) ([]*entity.Product, error)
	// DecreaseStockIfEnough resta qty solo si quantity >= qty (una única sentencia condicional).
	// Devuelve false si no se actualizó ninguna fila.
	DecreaseStockIfEnough(ctx context.Context, id string, qty int64) (bool, error)
	// IncreaseStock suma qty al stock. Devuelve false si el producto no existe.
	IncreaseStock(ctx context.Context, id string, qty int64) (bool, error)
}
