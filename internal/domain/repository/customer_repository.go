package repository

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	// InsertIfAbsent inserta el cliente si su email no existe. Devuelve true si se insertó.
	InsertIfAbsent(ctx context.Context, customer *entity.Customer) (bool, error)
	GetByEmail(ctx context.Context, email string) (*entity.Customer, error)
}
