package repository

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// AdminRepository acceso a administradores. Create solo se usa al aprovisionar.
type AdminRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Admin, error)
	Create(ctx context.Context, admin *entity.Admin) error
}
