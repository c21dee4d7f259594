package inventory

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/identifier"
	"github.com/rs/zerolog"
)

// TransactionUseCase coordina Supply, Restock y Sale como unidades atómicas:
// stock, cliente y registro se confirman juntos o no se confirma nada.
type TransactionUseCase struct {
	txRunner TxRunner
	sessions AdminSessions
	photos   PhotoStore
	ids      *identifier.Generator
	now      func() time.Time
	log      zerolog.Logger
}

// Option configura el caso de uso.
type Option func(*TransactionUseCase)

// WithClock reemplaza el reloj (fecha de operación).
func WithClock(now func() time.Time) Option {
	return func(uc *TransactionUseCase) { uc.now = now }
}

// WithGenerator reemplaza el generador de identificadores.
func WithGenerator(g *identifier.Generator) Option {
	return func(uc *TransactionUseCase) { uc.ids = g }
}

// NewTransactionUseCase construye el coordinador de transacciones.
func NewTransactionUseCase(
	txRunner TxRunner,
	sessions AdminSessions,
	photos PhotoStore,
	log zerolog.Logger,
	opts ...Option,
) *TransactionUseCase {
	uc := &TransactionUseCase{
		txRunner: txRunner,
		sessions: sessions,
		photos:   photos,
		ids:      identifier.NewGenerator(),
		now:      time.Now,
		log:      log,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Supply registra un producto nuevo y su abastecimiento. Cada llamada crea un Product con un
// identificador nuevo. Producto y abastecimiento se insertan en la misma transacción.
func (uc *TransactionUseCase) Supply(ctx context.Context, sessionToken string, in dto.SupplyProductRequest) (*dto.SupplyResponse, error) {
	adminID, ok := uc.sessions.ValidateSession(sessionToken)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	if in.Price < 0 {
		return nil, fmt.Errorf("%w: price no puede ser negativo", domain.ErrInvalidInput)
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	blobs, err := DecodePhotos(in.Photos)
	if err != nil {
		return nil, err
	}

	date := operationDate(uc.now())
	var out dto.SupplyResponse
	var stored []string

	err = uc.txRunner.Run(ctx, func(repos Repositories) error {
		productID, err := uc.ids.NewID(ctx, identifier.PrefixProduct, repos.Identifiers)
		if err != nil {
			return err
		}
		product := &entity.Product{ID: productID, Name: name, Price: in.Price, Quantity: in.Quantity}
		for i, data := range blobs {
			if data == nil {
				continue
			}
			ref, err := uc.photos.Put(ctx, productID, i+1, data)
			if err != nil {
				return fmt.Errorf("store photo %d: %w", i+1, err)
			}
			stored = append(stored, ref)
			product.Photos[i] = ref
		}
		if err := repos.Products.Create(ctx, product); err != nil {
			return err
		}

		supplyID, err := uc.ids.NewID(ctx, identifier.PrefixSupply, repos.Identifiers)
		if err != nil {
			return err
		}
		supply := &entity.Supply{
			ID:            supplyID,
			ProductID:     productID,
			AdminID:       adminID,
			Quantity:      in.Quantity,
			Price:         in.Price,
			OperationDate: date,
		}
		if err := repos.Supplies.Create(ctx, supply); err != nil {
			return err
		}
		out = dto.SupplyResponse{ProductID: productID, SupplyID: supplyID}
		return nil
	})
	if err != nil {
		uc.discardPhotos(stored)
		return nil, uc.fail("supply", err)
	}

	uc.log.Info().
		Str("product_id", out.ProductID).
		Str("supply_id", out.SupplyID).
		Str("admin_id", adminID).
		Int64("quantity", in.Quantity).
		Msg("abastecimiento registrado")
	return &out, nil
}

// Restock suma stock a un producto existente y registra el abastecimiento al precio actual del producto.
func (uc *TransactionUseCase) Restock(ctx context.Context, sessionToken string, in dto.RestockRequest) (*dto.RestockResponse, error) {
	adminID, ok := uc.sessions.ValidateSession(sessionToken)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if strings.TrimSpace(in.ProductID) == "" {
		return nil, fmt.Errorf("%w: product_id es requerido", domain.ErrInvalidInput)
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	date := operationDate(uc.now())
	var out dto.RestockResponse

	err := uc.txRunner.Run(ctx, func(repos Repositories) error {
		if err := NewLedger(repos.Products).Increase(ctx, in.ProductID, in.Quantity); err != nil {
			return err
		}
		product, err := repos.Products.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("producto %s: %w", in.ProductID, domain.ErrNotFound)
		}
		supplyID, err := uc.ids.NewID(ctx, identifier.PrefixSupply, repos.Identifiers)
		if err != nil {
			return err
		}
		supply := &entity.Supply{
			ID:            supplyID,
			ProductID:     product.ID,
			AdminID:       adminID,
			Quantity:      in.Quantity,
			Price:         product.Price,
			OperationDate: date,
		}
		if err := repos.Supplies.Create(ctx, supply); err != nil {
			return err
		}
		out = dto.RestockResponse{ProductID: product.ID, SupplyID: supplyID, Quantity: product.Quantity}
		return nil
	})
	if err != nil {
		return nil, uc.fail("restock", err)
	}

	uc.log.Info().
		Str("product_id", out.ProductID).
		Str("supply_id", out.SupplyID).
		Str("admin_id", adminID).
		Int64("stock", out.Quantity).
		Msg("reposición registrada")
	return &out, nil
}

// Sale descuenta stock, registra al cliente si es nuevo e inserta la venta, todo en una transacción.
// Si la reserva de stock falla no se escribe ni el cliente ni la venta.
func (uc *TransactionUseCase) Sale(ctx context.Context, in dto.SaleRequest) (*dto.SaleResponse, error) {
	if in.Product.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	productID := strings.TrimSpace(in.Product.ID)
	if productID == "" {
		return nil, fmt.Errorf("%w: product.id es requerido", domain.ErrInvalidInput)
	}
	email := NormalizeEmail(in.Customer.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: customer.email inválido", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.Customer.Name) == "" {
		return nil, fmt.Errorf("%w: customer.name es requerido", domain.ErrInvalidInput)
	}

	date := operationDate(uc.now())
	var out dto.SaleResponse

	err := uc.txRunner.Run(ctx, func(repos Repositories) error {
		if err := NewLedger(repos.Products).Reserve(ctx, productID, in.Product.Quantity); err != nil {
			return err
		}
		product, err := repos.Products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("producto %s: %w", productID, domain.ErrNotFound)
		}
		registry := NewCustomerRegistry(repos.Customers, uc.now)
		if err := registry.EnsureCustomer(ctx, email, in.Customer.Name, in.Customer.City, in.Customer.Address); err != nil {
			return err
		}
		saleID, err := uc.ids.NewID(ctx, identifier.PrefixSale, repos.Identifiers)
		if err != nil {
			return err
		}
		sale := &entity.Sale{
			ID:            saleID,
			ProductID:     productID,
			Quantity:      in.Product.Quantity,
			Price:         product.Price,
			CustomerEmail: email,
			City:          strings.TrimSpace(in.Customer.City),
			Address:       strings.TrimSpace(in.Customer.Address),
			OperationDate: date,
		}
		if err := repos.Sales.Create(ctx, sale); err != nil {
			return err
		}
		out = dto.SaleResponse{ProductID: productID, CustomerName: strings.TrimSpace(in.Customer.Name), SaleID: saleID}
		return nil
	})
	if err != nil {
		return nil, uc.fail("sale", err)
	}

	uc.log.Info().
		Str("product_id", out.ProductID).
		Str("sale_id", out.SaleID).
		Int64("quantity", in.Product.Quantity).
		Msg("venta registrada")
	return &out, nil
}

// fail traduce el error a la taxonomía de dominio. Los errores de persistencia se registran con
// su causa y se devuelven como StorageFailure.
func (uc *TransactionUseCase) fail(op string, err error) error {
	err = domain.Storage(err)
	var sf *domain.StorageFailure
	if errors.As(err, &sf) {
		uc.log.Error().Err(sf.Cause).Str("op", op).Msg("operación abortada por error de almacenamiento")
		return err
	}
	uc.log.Debug().Err(err).Str("op", op).Msg("operación rechazada")
	return err
}

// discardPhotos elimina las fotos escritas por una transacción abortada.
func (uc *TransactionUseCase) discardPhotos(refs []string) {
	for _, ref := range refs {
		if err := uc.photos.Delete(context.Background(), ref); err != nil {
			uc.log.Warn().Err(err).Str("ref", ref).Msg("no se pudo eliminar foto huérfana")
		}
	}
}

// DecodePhotos decodifica las fotos en base64 de las claves photo_1..photo_3.
// Valores vacíos se ignoran; cualquier otra clave es un error de entrada.
func DecodePhotos(photos map[string]string) ([entity.MaxPhotos][]byte, error) {
	var out [entity.MaxPhotos][]byte
	for key, value := range photos {
		slot, ok := photoSlot(key)
		if !ok {
			return out, fmt.Errorf("%w: clave de foto desconocida %q", domain.ErrInvalidInput, key)
		}
		if value == "" {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(value)
		if err != nil {
			return out, fmt.Errorf("%w: %s no es base64 válido", domain.ErrInvalidInput, key)
		}
		out[slot-1] = data
	}
	return out, nil
}

func photoSlot(key string) (int, bool) {
	for slot := 1; slot <= entity.MaxPhotos; slot++ {
		if key == fmt.Sprintf("photo_%d", slot) {
			return slot, true
		}
	}
	return 0, false
}

// operationDate trunca al día (las operaciones se registran con fecha, sin hora).
func operationDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
