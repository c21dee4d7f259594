// Package identifier genera los identificadores cortos de productos, ventas y abastecimientos.
// Los tres tipos comparten un único espacio: un núcleo de 10 caracteres solo se usa una vez
// sin importar el prefijo de entidad.
package identifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/tienda-api/internal/domain"
)

// Prefijos de entidad.
const (
	PrefixProduct = "PR"
	PrefixSale    = "SL"
	PrefixSupply  = "SP"
)

const (
	// CoreLength longitud del núcleo aleatorio (sin prefijo).
	CoreLength = 10
	// DefaultMaxAttempts reintentos antes de ErrGenerationExhausted.
	DefaultMaxAttempts = 10
)

var prefixes = []string{PrefixProduct, PrefixSale, PrefixSupply}

// Checker consulta si algún identificador ya está en uso. Debe estar atado a la misma
// transacción que hará el insert posterior.
type Checker interface {
	AnyInUse(ctx context.Context, ids ...string) (bool, error)
}

// Generator produce identificadores únicos en las tres tablas.
type Generator struct {
	source      func() string
	maxAttempts int
}

// Option configura el Generator.
type Option func(*Generator)

// WithSource reemplaza la fuente de núcleos (tests).
func WithSource(source func() string) Option {
	return func(g *Generator) { g.source = source }
}

// WithMaxAttempts cambia el número de intentos.
func WithMaxAttempts(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxAttempts = n
		}
	}
}

// NewGenerator construye el generador con la fuente UUID por defecto.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{source: uuidCore, maxAttempts: DefaultMaxAttempts}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// uuidCore toma los últimos 10 caracteres hexadecimales de un UUID v4 en mayúsculas.
func uuidCore() string {
	s := uuid.NewString()
	return strings.ToUpper(s[len(s)-CoreLength:])
}

// NewID genera un identificador con el prefijo indicado, libre en products, sales y supplies.
func (g *Generator) NewID(ctx context.Context, prefix string, checker Checker) (string, error) {
	if !validPrefix(prefix) {
		return "", fmt.Errorf("prefijo %q: %w", prefix, domain.ErrInvalidInput)
	}
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		core := g.source()
		inUse, err := checker.AnyInUse(ctx, candidates(core)...)
		if err != nil {
			return "", fmt.Errorf("check identifier: %w", err)
		}
		if !inUse {
			return prefix + core, nil
		}
	}
	return "", domain.ErrGenerationExhausted
}

// candidates devuelve el núcleo con cada prefijo de entidad.
func candidates(core string) []string {
	out := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		out = append(out, p+core)
	}
	return out
}

func validPrefix(prefix string) bool {
	for _, p := range prefixes {
		if p == prefix {
			return true
		}
	}
	return false
}
