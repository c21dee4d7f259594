package dto

import "github.com/jhoicas/tienda-api/internal/domain"

// Envelope cuerpo uniforme de todas las respuestas de la API.
// Se construye siempre con OK o Fail; no existe un estado "sin inicializar".
type Envelope struct {
	Data    []any       `json:"data"`
	Error   bool        `json:"error"`
	Details string      `json:"details"`
	Kind    domain.Kind `json:"kind,omitempty"`
}

// OK construye un sobre de éxito.
func OK(details string, data ...any) Envelope {
	if data == nil {
		data = []any{}
	}
	return Envelope{Data: data, Error: false, Details: details}
}

// Fail construye un sobre de error a partir de un error de dominio.
// Los fallos de almacenamiento llevan un mensaje genérico, nunca la causa.
func Fail(err error) Envelope {
	kind := domain.KindOf(err)
	return Envelope{Data: []any{}, Error: true, Details: failMessage(kind, err), Kind: kind}
}

// MsgIncorrectLogin respuesta constante para credenciales inválidas (no distingue id de secreto).
const MsgIncorrectLogin = "Incorrect login or password"

func failMessage(kind domain.Kind, err error) string {
	if kind == domain.KindStorage {
		return domain.ErrStorage.Error()
	}
	return err.Error()
}
