package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrInvalidQuantity     = errors.New("la cantidad debe ser mayor que cero")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrGenerationExhausted = errors.New("no se pudo generar un identificador único")
	ErrStorage             = errors.New("error de base de datos")
)

// Kind clasifica un error para la capa de frontera (sobre de respuesta y código HTTP).
type Kind string

const (
	KindNone                Kind = ""
	KindUnauthorized        Kind = "UNAUTHORIZED"
	KindNotFound            Kind = "NOT_FOUND"
	KindInsufficientStock   Kind = "INSUFFICIENT_STOCK"
	KindInvalidQuantity     Kind = "INVALID_QUANTITY"
	KindInvalidInput        Kind = "VALIDATION"
	KindDuplicate           Kind = "DUPLICATE"
	KindGenerationExhausted Kind = "GENERATION_EXHAUSTED"
	KindStorage             Kind = "STORAGE_FAILURE"
)

var kinds = []struct {
	err  error
	kind Kind
}{
	{ErrUnauthorized, KindUnauthorized},
	{ErrNotFound, KindNotFound},
	{ErrInsufficientStock, KindInsufficientStock},
	{ErrInvalidQuantity, KindInvalidQuantity},
	{ErrInvalidInput, KindInvalidInput},
	{ErrDuplicate, KindDuplicate},
	{ErrGenerationExhausted, KindGenerationExhausted},
	{ErrStorage, KindStorage},
}

// KindOf devuelve la clase del error. Un error que no es de dominio se considera fallo de almacenamiento.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindStorage
}

// IsDomain indica si err pertenece a la taxonomía de dominio.
func IsDomain(err error) bool {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return true
		}
	}
	return false
}

// StorageFailure envuelve un error de persistencia. Su mensaje es genérico para no filtrar
// detalles internos; la causa sigue disponible vía errors.Unwrap para los logs.
type StorageFailure struct {
	Cause error
}

func (e *StorageFailure) Error() string { return ErrStorage.Error() }

func (e *StorageFailure) Is(target error) bool { return target == ErrStorage }

func (e *StorageFailure) Unwrap() error { return e.Cause }

// Storage convierte cualquier error que no sea de dominio en StorageFailure.
// Los errores de dominio y nil se devuelven sin cambios.
func Storage(err error) error {
	if err == nil || IsDomain(err) {
		return err
	}
	return &StorageFailure{Cause: err}
}
