package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
)

// StatusFor traduce la categoría del error de dominio a código HTTP.
func StatusFor(err error) int {
	switch domain.KindOf(err) {
	case domain.KindNone:
		return fiber.StatusOK
	case domain.KindInvalidQuantity, domain.KindInvalidInput:
		return fiber.StatusBadRequest
	case domain.KindUnauthorized:
		return fiber.StatusUnauthorized
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindInsufficientStock:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func ok(c *fiber.Ctx, status int, details string, data ...any) error {
	return c.Status(status).JSON(dto.OK(details, data...))
}

func fail(c *fiber.Ctx, err error) error {
	return c.Status(StatusFor(err)).JSON(dto.Fail(err))
}

func invalidBody(c *fiber.Ctx) error {
	return fail(c, fmt.Errorf("%w: cuerpo inválido", domain.ErrInvalidInput))
}

// ErrorHandler sobre para errores propios de Fiber (ruta inexistente, método no permitido, panics recuperados).
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.Envelope{Data: []any{}, Error: true, Details: fe.Message})
	}
	return fail(c, domain.Storage(err))
}
