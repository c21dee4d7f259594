package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, price, quantity, photo_1, photo_2, photo_3)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''))`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Price, product.Quantity,
		product.Photos[0], product.Photos[1], product.Photos[2],
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `
		SELECT id, name, price, quantity, COALESCE(photo_1, ''), COALESCE(photo_2, ''), COALESCE(photo_3, '')
		FROM products WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Price, &p.Quantity, &p.Photos[0], &p.Photos[1], &p.Photos[2],
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// ListAvailable lista los productos con stock, ordenados por nombre.
func (r *ProductRepo) ListAvailable(ctx context.Context) ([]*entity.Product, error) {
	query := `
		SELECT id, name, price, quantity, COALESCE(photo_1, ''), COALESCE(photo_2, ''), COALESCE(photo_3, '')
		FROM products WHERE quantity > 0 ORDER BY name, id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Quantity, &p.Photos[0], &p.Photos[1], &p.Photos[2]); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// DecreaseStockIfEnough descuento condicional en una sola sentencia; la fila queda bloqueada hasta el fin de la tx.
func (r *ProductRepo) DecreaseStockIfEnough(ctx context.Context, id string, qty int64) (bool, error) {
	tag, err := r.q.Exec(ctx,
		`UPDATE products SET quantity = quantity - $1 WHERE id = $2 AND quantity >= $1`, qty, id)
	if err != nil {
		return false, fmt.Errorf("decrease stock: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// IncreaseStock suma qty al stock.
func (r *ProductRepo) IncreaseStock(ctx context.Context, id string, qty int64) (bool, error) {
	tag, err := r.q.Exec(ctx, `UPDATE products SET quantity = quantity + $1 WHERE id = $2`, qty, id)
	if err != nil {
		return false, fmt.Errorf("increase stock: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
