package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/ascari-panel/internal/application/dto"
)

// CartHandler operaciones del carrito. Todas devuelven el estado completo de la pantalla.
type CartHandler struct {
	log zerolog.Logger
}

// NewCartHandler construye el handler.
func NewCartHandler(log zerolog.Logger) *CartHandler {
	return &CartHandler{log: log}
}

// Add agrega una unidad del producto.
// POST /api/cart/items
func (h *CartHandler) Add(c *fiber.Ctx) error {
	ws := workspaceOf(c)
	if ws == nil {
		return unauthorized(c)
	}
	var in dto.CartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id requerido"})
	}
	if err := ws.AddToCart(in.ProductID); err != nil {
		return respondError(c, h.log, err)
	}
	return respondView(c, ws)
}

// SetQuantity fija la cantidad de una línea (mínimo 1).
// PUT /api/cart/items/:id
func (h *CartHandler) SetQuantity(c *fiber.Ctx) error {
	ws := workspaceOf(c)
	if ws == nil {
		return unauthorized(c)
	}
	var in dto.CartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := ws.SetQuantity(c.Params("id"), in.Quantity); err != nil {
		return respondError(c, h.log, err)
	}
	return respondView(c, ws)
}

// Decrement resta una unidad.
// POST /api/cart/items/:id/decrement
func (h *CartHandler) Decrement(c *fiber.Ctx) error {
	ws := workspaceOf(c)
	if ws == nil {
		return unauthorized(c)
	}
	if err := ws.Decrement(c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return respondView(c, ws)
}

// Remove elimina la línea.
// DELETE /api/cart/items/:id
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	ws := workspaceOf(c)
	if ws == nil {
		return unauthorized(c)
	}
	if err := ws.RemoveFromCart(c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return respondView(c, ws)
}

// Clear vacía el carrito.
// DELETE /api/cart
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	ws := workspaceOf(c)
	if ws == nil {
		return unauthorized(c)
	}
	if err := ws.ClearCart(); err != nil {
		return respondError(c, h.log, err)
	}
	return respondView(c, ws)
}
