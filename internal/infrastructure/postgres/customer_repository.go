package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// InsertIfAbsent inserta el cliente; si el email ya existe no toca la fila.
func (r *CustomerRepo) InsertIfAbsent(ctx context.Context, c *entity.Customer) (bool, error) {
	query := `
		INSERT INTO customers (email, name, city, address, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO NOTHING`
	tag, err := r.q.Exec(ctx, query, c.Email, c.Name, c.City, c.Address, c.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("insert customer: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// GetByEmail obtiene un cliente por email.
func (r *CustomerRepo) GetByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	query := `SELECT email, name, city, address, created_at FROM customers WHERE email = $1`
	var c entity.Customer
	err := r.q.QueryRow(ctx, query, email).Scan(&c.Email, &c.Name, &c.City, &c.Address, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}
