package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.IdentifierRepository = (*IdentifierRepo)(nil)

// IdentifierRepo consulta las tres tablas que comparten el espacio de ids.
type IdentifierRepo struct {
	q Querier
}

// NewIdentifierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewIdentifierRepository(q Querier) *IdentifierRepo {
	return &IdentifierRepo{q: q}
}

// AnyInUse devuelve true si algún id existe en products, sales o supplies.
func (r *IdentifierRepo) AnyInUse(ctx context.Context, ids ...string) (bool, error) {
	if len(ids) == 0 {
		return false, nil
	}
	query := `
		SELECT EXISTS(SELECT 1 FROM products WHERE id = ANY($1))
			OR EXISTS(SELECT 1 FROM sales WHERE id = ANY($1))
			OR EXISTS(SELECT 1 FROM supplies WHERE id = ANY($1))`
	var used bool
	if err := r.q.QueryRow(ctx, query, ids).Scan(&used); err != nil {
		return false, fmt.Errorf("check identifiers: %w", err)
	}
	return used, nil
}
