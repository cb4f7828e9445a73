package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/ascari-panel/internal/application/dto"
	"github.com/jhoicas/ascari-panel/internal/application/quote"
	"github.com/jhoicas/ascari-panel/internal/domain"
)

// CatalogHandler navegación del catálogo de la sesión: árbol, filtro, búsqueda y refresco.
type CatalogHandler struct {
	log zerolog.Logger
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(log zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{log: log}
}

// workspaceOf workspace de la sesión autenticada.
func workspaceOf(c *fiber.Ctx) *quote.Workspace {
	if s := GetSession(c); s != nil {
		return s.Workspace
	}
	return nil
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
}

// respondView devuelve el estado completo de la pantalla.
func respondView(c *fiber.Ctx, ws *quote.Workspace) error {
	return c.JSON(toWorkspaceResponse(ws.View(), syncOf(ws)))
}

// View estado actual.
// GET /api/catalog
func (h *CatalogHandler) View(c *fiber.Ctx) error {
	ws := workspaceOf(c)
	if ws == nil {
		return unauthorized(c)
	}
	return respondView(c, ws)
}

// Refresh vuelve a traer el catálogo. Si el backend no responde se sigue mostrando el anterior
// con catalog_error activo.
// POST /api/catalog/refresh
func (h *CatalogHandler) Refresh(c *fiber.Ctx) error {
	ws := workspaceOf(c)
	if ws == nil {
		return unauthorized(c)
	}
	if err := ws.RefreshCatalog(c.Context()); err != nil && !errors.Is(err, domain.ErrGatewayUnavailable) {
		return respondError(c, h.log, err)
	}
	return respondView(c, ws)
}

// Toggle expande o colapsa una categoría.
// POST /api/catalog/toggle
func (h *CatalogHandler) Toggle(c *fiber.Ctx) error {
	ws := workspaceOf(c)
	if ws == nil {
		return unauthorized(c)
	}
	var in dto.SelectCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	ws.ToggleCategory(in.CategoryID)
	return respondView(c, ws)
}

// Filter fija o limpia el filtro de categoría.
// POST /api/catalog/filter
func (h *CatalogHandler) Filter(c *fiber.Ctx) error {
	ws := workspaceOf(c)
	if ws == nil {
		return unauthorized(c)
	}
	var in dto.SelectCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	ws.SelectCategory(in.CategoryID)
	return respondView(c, ws)
}

// Query filtro de texto local sobre nombre y código.
// POST /api/catalog/query
func (h *CatalogHandler) Query(c *fiber.Ctx) error {
	ws := workspaceOf(c)
	if ws == nil {
		return unauthorized(c)
	}
	var in dto.QueryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	ws.SetQuery(in.Query)
	return respondView(c, ws)
}

// Search búsqueda remota de productos; consulta vacía vuelve al catálogo completo.
// POST /api/catalog/search
func (h *CatalogHandler) Search(c *fiber.Ctx) error {
	ws := workspaceOf(c)
	if ws == nil {
		return unauthorized(c)
	}
	var in dto.QueryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	err := ws.SearchProducts(c.Context(), strings.TrimSpace(in.Query))
	if err != nil && !errors.Is(err, domain.ErrGatewayUnavailable) {
		return respondError(c, h.log, err)
	}
	return respondView(c, ws)
}
