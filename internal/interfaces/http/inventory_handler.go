package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/inventory"
)

// InventoryHandler maneja abastecimiento y reposición (protegido por sesión).
type InventoryHandler struct {
	uc *inventory.TransactionUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.TransactionUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Supply godoc
// @Summary      Registrar producto nuevo y su abastecimiento
// @Tags         admin-panel
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SupplyProductRequest  true  "name, price, quantity, photos (photo_1..photo_3 en base64)"
// @Success      201   {object}  dto.Envelope
// @Failure      400   {object}  dto.Envelope
// @Failure      401   {object}  dto.Envelope
// @Router       /admin-panel/supply [post]
func (h *InventoryHandler) Supply(c *fiber.Ctx) error {
	var in dto.SupplyProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Supply(c.Context(), GetSessionToken(c), in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, "producto abastecido", out)
}

// Restock godoc
// @Summary      Reponer stock de un producto existente
// @Tags         admin-panel
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RestockRequest  true  "product_id, quantity"
// @Success      201   {object}  dto.Envelope
// @Failure      400   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Router       /admin-panel/restock [post]
func (h *InventoryHandler) Restock(c *fiber.Ctx) error {
	var in dto.RestockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Restock(c.Context(), GetSessionToken(c), in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, "stock repuesto", out)
}
