package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// Ledger aplica ajustes de stock. El repositorio debe estar atado a la transacción del llamador.
type Ledger struct {
	products repository.ProductRepository
}

// NewLedger construye el ledger sobre el repositorio de productos de la transacción.
func NewLedger(products repository.ProductRepository) *Ledger {
	return &Ledger{products: products}
}

// Reserve descuenta qty del stock del producto. El descuento es una única sentencia condicional
// (quantity >= qty), por lo que dos ventas concurrentes no pueden dejar el stock en negativo.
func (l *Ledger) Reserve(ctx context.Context, productID string, qty int64) error {
	if qty <= 0 {
		return domain.ErrInvalidQuantity
	}
	ok, err := l.products.DecreaseStockIfEnough(ctx, productID, qty)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	// Sin filas afectadas: distinguir producto inexistente de stock insuficiente.
	product, err := l.products.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("producto %s: %w", productID, domain.ErrNotFound)
	}
	return fmt.Errorf("producto %s (disponible %d, solicitado %d): %w",
		productID, product.Quantity, qty, domain.ErrInsufficientStock)
}

// Increase suma qty al stock de un producto existente.
func (l *Ledger) Increase(ctx context.Context, productID string, qty int64) error {
	if qty <= 0 {
		return domain.ErrInvalidQuantity
	}
	ok, err := l.products.IncreaseStock(ctx, productID, qty)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("producto %s: %w", productID, domain.ErrNotFound)
	}
	return nil
}
