package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository (usable con db o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar db o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// InsertIfAbsent inserta el cliente; si el email ya existe no toca la fila.
func (r *CustomerRepo) InsertIfAbsent(ctx context.Context, c *entity.Customer) (bool, error) {
	query := `
		INSERT INTO customers (email, name, city, address, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(email) DO NOTHING`
	res, err := r.q.ExecContext(ctx, query,
		c.Email, c.Name, c.City, c.Address, c.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return false, fmt.Errorf("insert customer: %w", err)
	}
	return affectedOne(res)
}

// GetByEmail obtiene un cliente por email.
func (r *CustomerRepo) GetByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	query := `SELECT email, name, city, address, created_at FROM customers WHERE email = ?`
	var c entity.Customer
	var createdAt string
	err := r.q.QueryRowContext(ctx, query, email).Scan(&c.Email, &c.Name, &c.City, &c.Address, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	if c.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	return &c, nil
}
