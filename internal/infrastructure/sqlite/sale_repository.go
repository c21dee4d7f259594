package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository (append-only).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar db o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la venta.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `
		INSERT INTO sales (id, product_id, quantity, price, customer_email, city, address, operation_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.q.ExecContext(ctx, query,
		s.ID, s.ProductID, s.Quantity, s.Price, s.CustomerEmail, s.City, s.Address,
		s.OperationDate.Format(dateLayout),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// ListByProduct lista las ventas de un producto.
func (r *SaleRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Sale, error) {
	query := `
		SELECT id, product_id, quantity, price, customer_email, city, address, operation_date
		FROM sales WHERE product_id = ? ORDER BY operation_date, id`
	rows, err := r.q.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		var date string
		if err := rows.Scan(&s.ID, &s.ProductID, &s.Quantity, &s.Price, &s.CustomerEmail, &s.City, &s.Address, &date); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		if s.OperationDate, err = time.Parse(dateLayout, date); err != nil {
			return nil, fmt.Errorf("parse operation_date: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
