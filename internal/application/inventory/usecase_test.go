package inventory_test

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/inventory"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/identifier"
	"github.com/jhoicas/tienda-api/internal/infrastructure/photostore"
	"github.com/jhoicas/tienda-api/internal/infrastructure/sqlite"
)

const adminToken = "token-admin"

var now = time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC)

// fakeSessions acepta un único token fijo.
type fakeSessions struct{}

func (fakeSessions) ValidateSession(token string) (string, bool) {
	if token == adminToken {
		return "admin", true
	}
	return "", false
}

type testEnv struct {
	uc     *inventory.TransactionUseCase
	db     *sql.DB
	photos *photostore.FileStore
}

func newTestEnv(t *testing.T, opts ...inventory.Option) *testEnv {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "tienda.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.NewAdminRepository(db).Create(ctx, &entity.Admin{ID: "admin", SecretHash: "x"}))

	photos, err := photostore.NewFileStore(afero.NewMemMapFs(), "/media/images")
	require.NoError(t, err)

	opts = append([]inventory.Option{inventory.WithClock(func() time.Time { return now })}, opts...)
	uc := inventory.NewTransactionUseCase(sqlite.NewTxRunner(db), fakeSessions{}, photos, zerolog.Nop(), opts...)
	return &testEnv{uc: uc, db: db, photos: photos}
}

func (e *testEnv) supply(t *testing.T, name string, price, qty int64) string {
	t.Helper()
	out, err := e.uc.Supply(context.Background(), adminToken, dto.SupplyProductRequest{Name: name, Price: price, Quantity: qty})
	require.NoError(t, err)
	return out.ProductID
}

func (e *testEnv) product(t *testing.T, id string) *entity.Product {
	t.Helper()
	p, err := sqlite.NewProductRepository(e.db).GetByID(context.Background(), id)
	require.NoError(t, err)
	return p
}

func saleRequest(productID string, qty int64, email string) dto.SaleRequest {
	return dto.SaleRequest{
		Product:  dto.SaleProduct{ID: productID, Quantity: qty},
		Customer: dto.SaleCustomer{Name: "Ana", Email: email, City: "Cali", Address: "Calle 1 # 2-3"},
	}
}

func TestSupply_CreaProductoYAbastecimiento(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	jpeg := []byte{0xFF, 0xD8, 0xFF, 0xE0}

	out, err := env.uc.Supply(ctx, adminToken, dto.SupplyProductRequest{
		Name: "  Taza  ", Price: 1500, Quantity: 4,
		Photos: map[string]string{"photo_2": base64.StdEncoding.EncodeToString(jpeg)},
	})
	require.NoError(t, err)
	assert.Regexp(t, `^PR[0-9A-F]{10}$`, out.ProductID)
	assert.Regexp(t, `^SP[0-9A-F]{10}$`, out.SupplyID)

	p := env.product(t, out.ProductID)
	require.NotNil(t, p)
	assert.Equal(t, "Taza", p.Name)
	assert.Equal(t, int64(4), p.Quantity)
	assert.Empty(t, p.Photos[0])
	assert.Equal(t, out.ProductID+"_2.jpg", p.Photos[1])

	data, err := env.photos.Get(ctx, p.Photos[1])
	require.NoError(t, err)
	assert.Equal(t, jpeg, data)

	supplies, err := sqlite.NewSupplyRepository(env.db).ListByProduct(ctx, out.ProductID)
	require.NoError(t, err)
	require.Len(t, supplies, 1)
	assert.Equal(t, out.SupplyID, supplies[0].ID)
	assert.Equal(t, "admin", supplies[0].AdminID)
	assert.Equal(t, int64(1500), supplies[0].Price)
	assert.True(t, supplies[0].OperationDate.Equal(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)))
}

// Dos abastecimientos con el mismo nombre crean productos distintos.
func TestSupply_CadaLlamadaCreaProductoNuevo(t *testing.T) {
	env := newTestEnv(t)
	a := env.supply(t, "Taza", 10, 1)
	b := env.supply(t, "Taza", 10, 1)
	assert.NotEqual(t, a, b)
}

func TestSupply_Rechazos(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	valid := dto.SupplyProductRequest{Name: "Taza", Price: 10, Quantity: 1}

	_, err := env.uc.Supply(ctx, "token-vencido", valid)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	bad := valid
	bad.Quantity = 0
	_, err = env.uc.Supply(ctx, adminToken, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	bad = valid
	bad.Name = " "
	_, err = env.uc.Supply(ctx, adminToken, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	bad = valid
	bad.Photos = map[string]string{"photo_1": "%%no-base64%%"}
	_, err = env.uc.Supply(ctx, adminToken, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	bad = valid
	bad.Photos = map[string]string{"photo_9": "AAAA"}
	_, err = env.uc.Supply(ctx, adminToken, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := sqlite.NewProductRepository(env.db).ListAvailable(ctx)
	require.NoError(t, err)
	assert.Empty(t, list, "un abastecimiento rechazado no escribe nada")
}

// Con un núcleo fijo el id del abastecimiento choca con el del producto recién creado:
// la transacción aborta y la foto ya escrita se elimina.
func TestSupply_AbortoDescartaFotos(t *testing.T) {
	gen := identifier.NewGenerator(identifier.WithSource(func() string { return "AAAAAAAAAA" }))
	env := newTestEnv(t, inventory.WithGenerator(gen))
	ctx := context.Background()

	_, err := env.uc.Supply(ctx, adminToken, dto.SupplyProductRequest{
		Name: "Taza", Price: 10, Quantity: 1,
		Photos: map[string]string{"photo_1": base64.StdEncoding.EncodeToString([]byte("jpeg"))},
	})
	assert.ErrorIs(t, err, domain.ErrGenerationExhausted)

	assert.Nil(t, env.product(t, "PRAAAAAAAAAA"), "el producto no debe quedar confirmado")
	_, err = env.photos.Get(ctx, "PRAAAAAAAAAA_1.jpg")
	assert.Error(t, err, "la foto huérfana debe eliminarse")
}

func TestRestock_SumaStockConPrecioActual(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.supply(t, "Taza", 1500, 2)

	out, err := env.uc.Restock(ctx, adminToken, dto.RestockRequest{ProductID: id, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(5), out.Quantity)
	assert.Equal(t, int64(5), env.product(t, id).Quantity)

	supplies, err := sqlite.NewSupplyRepository(env.db).ListByProduct(ctx, id)
	require.NoError(t, err)
	assert.Len(t, supplies, 2)

	_, err = env.uc.Restock(ctx, adminToken, dto.RestockRequest{ProductID: "PR0000000000", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = env.uc.Restock(ctx, adminToken, dto.RestockRequest{ProductID: id, Quantity: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = env.uc.Restock(ctx, "", dto.RestockRequest{ProductID: id, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestSale_DescuentaStockYRegistraCliente(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.supply(t, "Taza", 1500, 5)

	out, err := env.uc.Sale(ctx, saleRequest(id, 2, "  Ana@Example.com "))
	require.NoError(t, err)
	assert.Regexp(t, `^SL[0-9A-F]{10}$`, out.SaleID)
	assert.Equal(t, id, out.ProductID)
	assert.Equal(t, "Ana", out.CustomerName)
	assert.Equal(t, int64(3), env.product(t, id).Quantity)

	c, err := sqlite.NewCustomerRepository(env.db).GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, c, "el email se normaliza")
	assert.Equal(t, "Cali", c.City)

	sales, err := sqlite.NewSaleRepository(env.db).ListByProduct(ctx, id)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, int64(1500), sales[0].Price, "el precio sale del producto almacenado")
	assert.Equal(t, int64(3000), sales[0].Total())
}

func TestSale_StockInsuficienteNoEscribeNada(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.supply(t, "Taza", 10, 1)

	_, err := env.uc.Sale(ctx, saleRequest(id, 2, "ana@example.com"))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(1), env.product(t, id).Quantity)

	c, err := sqlite.NewCustomerRepository(env.db).GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Nil(t, c, "no se registra el cliente de una venta fallida")

	sales, err := sqlite.NewSaleRepository(env.db).ListByProduct(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestSale_Rechazos(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.supply(t, "Taza", 10, 1)

	_, err := env.uc.Sale(ctx, saleRequest("PR0000000000", 1, "ana@example.com"))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = env.uc.Sale(ctx, saleRequest(id, 0, "ana@example.com"))
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = env.uc.Sale(ctx, saleRequest(id, 1, "sin-arroba"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req := saleRequest(id, 1, "ana@example.com")
	req.Customer.Name = ""
	_, err = env.uc.Sale(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Un cliente existente conserva los datos de su primera compra.
func TestSale_ClienteRecurrenteNoSeModifica(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.supply(t, "Taza", 10, 5)

	_, err := env.uc.Sale(ctx, saleRequest(id, 1, "ana@example.com"))
	require.NoError(t, err)

	again := saleRequest(id, 1, "ANA@example.com")
	again.Customer.Name = "Ana María"
	again.Customer.City = "Bogotá"
	out, err := env.uc.Sale(ctx, again)
	require.NoError(t, err)
	assert.Equal(t, "Ana María", out.CustomerName)

	c, err := sqlite.NewCustomerRepository(env.db).GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ana", c.Name)
	assert.Equal(t, "Cali", c.City)

	sales, err := sqlite.NewSaleRepository(env.db).ListByProduct(ctx, id)
	require.NoError(t, err)
	require.Len(t, sales, 2)
	cities := []string{sales[0].City, sales[1].City}
	assert.ElementsMatch(t, []string{"Cali", "Bogotá"}, cities, "cada venta guarda su dirección de envío")
}

// Ventas concurrentes sobre el mismo producto nunca dejan el stock en negativo.
func TestSale_ConcurrenteNoSobrevende(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	const stock, buyers = 10, 30
	id := env.supply(t, "Taza", 10, stock)

	var sold, rejected atomic.Int64
	var g errgroup.Group
	g.SetLimit(8)
	for i := 0; i < buyers; i++ {
		g.Go(func() error {
			_, err := env.uc.Sale(ctx, saleRequest(id, 1, "ana@example.com"))
			switch {
			case err == nil:
				sold.Add(1)
			case errors.Is(err, domain.ErrInsufficientStock):
				rejected.Add(1)
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int64(stock), sold.Load())
	assert.Equal(t, int64(buyers-stock), rejected.Load())
	assert.Equal(t, int64(0), env.product(t, id).Quantity)

	sales, err := sqlite.NewSaleRepository(env.db).ListByProduct(ctx, id)
	require.NoError(t, err)
	assert.Len(t, sales, stock)
}

func TestSale_FalloDeAlmacenamientoEsGenerico(t *testing.T) {
	env := newTestEnv(t)
	id := env.supply(t, "Taza", 10, 1)
	require.NoError(t, env.db.Close())

	_, err := env.uc.Sale(context.Background(), saleRequest(id, 1, "ana@example.com"))
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.Equal(t, domain.ErrStorage.Error(), err.Error())
}
