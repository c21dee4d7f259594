package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.AdminRepository = (*AdminRepo)(nil)

// AdminRepo implementación de AdminRepository.
type AdminRepo struct {
	q Querier
}

// NewAdminRepository construye el adaptador. Pasar db o tx (Querier).
func NewAdminRepository(q Querier) *AdminRepo {
	return &AdminRepo{q: q}
}

// GetByID obtiene un administrador por ID.
func (r *AdminRepo) GetByID(ctx context.Context, id string) (*entity.Admin, error) {
	var a entity.Admin
	err := r.q.QueryRowContext(ctx, `SELECT id, secret_hash FROM admins WHERE id = ?`, id).Scan(&a.ID, &a.SecretHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get admin: %w", err)
	}
	return &a, nil
}

// Create persiste un administrador.
func (r *AdminRepo) Create(ctx context.Context, admin *entity.Admin) error {
	_, err := r.q.ExecContext(ctx, `INSERT INTO admins (id, secret_hash) VALUES (?, ?)`, admin.ID, admin.SecretHash)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert admin: %w", err)
	}
	return nil
}
