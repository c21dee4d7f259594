package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/catalog"
	"github.com/jhoicas/tienda-api/internal/domain"
)

// ProductHandler expone el catálogo público.
type ProductHandler struct {
	uc *catalog.CatalogUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *catalog.CatalogUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// List godoc
// @Summary      Productos disponibles
// @Tags         products
// @Produce      json
// @Success      200  {object}  dto.Envelope
// @Failure      500  {object}  dto.Envelope
// @Router       /products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListAvailable(c.Context())
	if err != nil {
		return fail(c, err)
	}
	data := make([]any, 0, len(list))
	for _, p := range list {
		data = append(data, p)
	}
	return ok(c, fiber.StatusOK, "productos disponibles", data...)
}

// GetByID godoc
// @Summary      Detalle de producto con fotos
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	product, err := h.uc.GetProduct(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "producto", product)
}

// GetPhoto godoc
// @Summary      Foto de producto
// @Tags         products
// @Produce      image/jpeg
// @Param        id    path  string  true  "ID del producto"
// @Param        slot  path  int     true  "Ranura 1..3"
// @Success      200
// @Failure      404  {object}  dto.Envelope
// @Router       /products/{id}/photos/{slot} [get]
func (h *ProductHandler) GetPhoto(c *fiber.Ctx) error {
	slot, err := c.ParamsInt("slot")
	if err != nil {
		return fail(c, domain.ErrInvalidInput)
	}
	photo, err := h.uc.GetPhoto(c.Context(), c.Params("id"), slot)
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "image/jpeg")
	return c.Send(photo.Data)
}
