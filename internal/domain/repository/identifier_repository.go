package repository

import "context"

// IdentifierRepository consulta el espacio de identificadores compartido por products, sales y supplies.
type IdentifierRepository interface {
	// AnyInUse devuelve true si alguno de los ids existe en cualquiera de las tres tablas.
	AnyInUse(ctx context.Context, ids ...string) (bool, error)
}
