package repository

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// SaleRepository registro append-only de ventas.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	ListByProduct(ctx context.Context, productID string) ([]*entity.Sale, error)
}
