package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/domain"
)

// SessionCookie nombre de la cookie de sesión de administrador.
const SessionCookie = "session_token"

// Locals keys para la sesión de administrador en Fiber.
const (
	LocalAdminID      = "admin_id"
	LocalSessionToken = "session_token"
)

// SessionValidator valida tokens de sesión (auth.AuthUseCase).
type SessionValidator interface {
	ValidateSession(token string) (adminID string, ok bool)
}

// SessionMiddleware exige una sesión de administrador vigente, tomada de la cookie o de un Bearer Token.
func SessionMiddleware(sessions SessionValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := sessionToken(c)
		if token == "" {
			return fail(c, domain.ErrUnauthorized)
		}
		adminID, valid := sessions.ValidateSession(token)
		if !valid {
			return fail(c, domain.ErrUnauthorized)
		}
		c.Locals(LocalAdminID, adminID)
		c.Locals(LocalSessionToken, token)
		return c.Next()
	}
}

func sessionToken(c *fiber.Ctx) string {
	if tok := strings.TrimSpace(c.Cookies(SessionCookie)); tok != "" {
		return tok
	}
	parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// GetAdminID devuelve el admin de la sesión (después del middleware).
func GetAdminID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalAdminID).(string)
	return s
}

// GetSessionToken devuelve el token de la sesión (después del middleware).
func GetSessionToken(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalSessionToken).(string)
	return s
}
