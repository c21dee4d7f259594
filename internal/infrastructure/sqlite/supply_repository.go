package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.SupplyRepository = (*SupplyRepo)(nil)

// SupplyRepo implementación de SupplyRepository (append-only).
type SupplyRepo struct {
	q Querier
}

// NewSupplyRepository construye el adaptador. Pasar db o tx (Querier).
func NewSupplyRepository(q Querier) *SupplyRepo {
	return &SupplyRepo{q: q}
}

// Create inserta el abastecimiento.
func (r *SupplyRepo) Create(ctx context.Context, s *entity.Supply) error {
	query := `
		INSERT INTO supplies (id, product_id, admin_id, quantity, price, operation_date)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.q.ExecContext(ctx, query,
		s.ID, s.ProductID, s.AdminID, s.Quantity, s.Price, s.OperationDate.Format(dateLayout))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supply: %w", err)
	}
	return nil
}

// ListByProduct lista los abastecimientos de un producto.
func (r *SupplyRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Supply, error) {
	query := `
		SELECT id, product_id, admin_id, quantity, price, operation_date
		FROM supplies WHERE product_id = ? ORDER BY operation_date, id`
	rows, err := r.q.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list supplies: %w", err)
	}
	defer rows.Close()

	var list []*entity.Supply
	for rows.Next() {
		var s entity.Supply
		var date string
		if err := rows.Scan(&s.ID, &s.ProductID, &s.AdminID, &s.Quantity, &s.Price, &date); err != nil {
			return nil, fmt.Errorf("scan supply: %w", err)
		}
		if s.OperationDate, err = time.Parse(dateLayout, date); err != nil {
			return nil, fmt.Errorf("parse operation_date: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
