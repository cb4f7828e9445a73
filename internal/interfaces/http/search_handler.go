package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/ascari-panel/internal/application/dto"
	"github.com/jhoicas/ascari-panel/internal/application/ports"
	"github.com/jhoicas/ascari-panel/internal/domain/entity"
)

// SearchHandler búsqueda de registros en el backend (productos, clientes, pedidos, facturas, tickets).
type SearchHandler struct {
	log zerolog.Logger
}

// NewSearchHandler construye el handler.
func NewSearchHandler(log zerolog.Logger) *SearchHandler {
	return &SearchHandler{log: log}
}

// Search GET /api/search/:kind?q=
// Las facturas solo las consulta admin.
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	ws := workspaceOf(c)
	if ws == nil {
		return unauthorized(c)
	}
	kind, ok := ports.ParseEntityKind(c.Params("kind"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tipo de búsqueda inválido"})
	}
	if kind == ports.KindInvoice && GetRole(c) != entity.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo admin consulta facturas"})
	}
	query := strings.TrimSpace(c.Query("q"))
	res, err := ws.SearchRecords(c.Context(), kind, query)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(toSearchResponse(kind, query, res))
}
