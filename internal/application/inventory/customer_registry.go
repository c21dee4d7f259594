package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// CustomerRegistry registra compradores por email (insert-if-absent).
type CustomerRegistry struct {
	customers repository.CustomerRepository
	now       func() time.Time
}

// NewCustomerRegistry construye el registro sobre el repositorio de clientes de la transacción.
func NewCustomerRegistry(customers repository.CustomerRepository, now func() time.Time) *CustomerRegistry {
	if now == nil {
		now = time.Now
	}
	return &CustomerRegistry{customers: customers, now: now}
}

// EnsureCustomer inserta el cliente si su email no existe todavía. Si ya existe no se modifica
// nada: nombre, ciudad y dirección quedan como en la primera compra. Es idempotente.
func (r *CustomerRegistry) EnsureCustomer(ctx context.Context, email, name, city, address string) error {
	email = NormalizeEmail(email)
	if email == "" {
		return fmt.Errorf("%w: email es requerido", domain.ErrInvalidInput)
	}
	_, err := r.customers.InsertIfAbsent(ctx, &entity.Customer{
		Email:     email,
		Name:      strings.TrimSpace(name),
		City:      strings.TrimSpace(city),
		Address:   strings.TrimSpace(address),
		CreatedAt: r.now(),
	})
	return err
}

// NormalizeEmail clave canónica del cliente.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
