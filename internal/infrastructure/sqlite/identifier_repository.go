package sqlite

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

// NewIdentifierRepository construye el adaptador. Pasar db o tx (Querier).
func NewIdentifierRepository(q Querier) *IdentifierRepo {
	return &IdentifierRepo{q: q}
}

// AnyInUse devuelve true si algún id existe en products, sales o supplies.
func (r *IdentifierRepo) AnyInUse(ctx context.Context, ids ...string) (bool, error) {
	if len(ids) == 0 {
		return false, nil
	}
	in := placeholders(len(ids))
	query := `SELECT EXISTS(SELECT 1 FROM products WHERE id IN (` + in + `))
		OR EXISTS(SELECT 1 FROM sales WHERE id IN (` + in + `))
		OR EXISTS(SELECT 1 FROM supplies WHERE id IN (` + in + `))`

	args := make([]any, 0, 3*len(ids))
	for i := 0; i < 3; i++ {
		for _, id := range ids {
			args = append(args, id)
		}
	}
	var used bool
	if err := r.q.QueryRowContext(ctx, query, args...).Scan(&used); err != nil {
		return false, fmt.Errorf("check identifiers: %w", err)
	}
	return used, nil
}
