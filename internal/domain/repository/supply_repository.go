package repository

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// SupplyRepository registro append-only de abastecimientos.
type SupplyRepository interface {
	Create(ctx context.Context, supply *entity.Supply) error
	ListByProduct(ctx context.Context, productID string) ([]*entity.Supply, error)
}
