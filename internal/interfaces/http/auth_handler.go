package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/dto"
)

// AuthHandler maneja login y logout del panel de administración.
type AuthHandler struct {
	uc           *auth.AuthUseCase
	ttl          time.Duration
	secureCookie bool
}

// NewAuthHandler construye el handler de auth. ttl define la expiración de la cookie.
func NewAuthHandler(uc *auth.AuthUseCase, ttl time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{uc: uc, ttl: ttl, secureCookie: secureCookie}
}

// Login godoc
// @Summary      Iniciar sesión de administrador
// @Tags         admin-panel
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "id, password"
// @Success      200   {object}  dto.Envelope
// @Failure      401   {object}  dto.Envelope
// @Router       /admin-panel/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return fail(c, err)
	}
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    out.Token,
		Path:     "/",
		Expires:  time.Now().Add(h.ttl),
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return ok(c, fiber.StatusOK, "sesión iniciada", out)
}

// Logout godoc
// @Summary      Cerrar sesión de administrador
// @Tags         admin-panel
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope
// @Failure      401  {object}  dto.Envelope
// @Router       /admin-panel/session [delete]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.uc.Logout(GetSessionToken(c))
	c.ClearCookie(SessionCookie)
	return ok(c, fiber.StatusOK, "sesión cerrada")
}
