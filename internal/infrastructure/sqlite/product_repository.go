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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre SQLite (usable con db o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar db o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, name, price, quantity, photo_1, photo_2, photo_3`

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `INSERT INTO products (` + productColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.q.ExecContext(ctx, query,
		product.ID, product.Name, product.Price, product.Quantity,
		nullIfEmpty(product.Photos[0]), nullIfEmpty(product.Photos[1]), nullIfEmpty(product.Photos[2]),
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
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ?`
	p, err := scanProduct(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// ListAvailable lista los productos con stock, ordenados por nombre.
func (r *ProductRepo) ListAvailable(ctx context.Context) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE quantity > 0 ORDER BY name, id`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// DecreaseStockIfEnough descuento condicional en una sola sentencia.
func (r *ProductRepo) DecreaseStockIfEnough(ctx context.Context, id string, qty int64) (bool, error) {
	res, err := r.q.ExecContext(ctx,
		`UPDATE products SET quantity = quantity - ? WHERE id = ? AND quantity >= ?`, qty, id, qty)
	if err != nil {
		return false, fmt.Errorf("decrease stock: %w", err)
	}
	return affectedOne(res)
}

// IncreaseStock suma qty al stock.
func (r *ProductRepo) IncreaseStock(ctx context.Context, id string, qty int64) (bool, error) {
	res, err := r.q.ExecContext(ctx, `UPDATE products SET quantity = quantity + ? WHERE id = ?`, qty, id)
	if err != nil {
		return false, fmt.Errorf("increase stock: %w", err)
	}
	return affectedOne(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*entity.Product, error) {
	var p entity.Product
	var photos [entity.MaxPhotos]sql.NullString
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Quantity, &photos[0], &photos[1], &photos[2]); err != nil {
		return nil, err
	}
	for i, ph := range photos {
		p.Photos[i] = ph.String
	}
	return &p, nil
}

func affectedOne(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n == 1, nil
}
