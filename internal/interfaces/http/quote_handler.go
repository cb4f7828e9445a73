package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/ascari-panel/internal/application/dto"
	"github.com/jhoicas/ascari-panel/internal/application/ports"
	"github.com/jhoicas/ascari-panel/internal/application/quote"
	"github.com/jhoicas/ascari-panel/internal/domain"
	"github.com/jhoicas/ascari-panel/internal/domain/entity"
)

// QuoteHandler emisión de cotizaciones, documento PDF, QR de verificación y consulta por código.
type QuoteHandler struct {
	qr  ports.QRRenderer
	log zerolog.Logger
}

// NewQuoteHandler construye el handler.
func NewQuoteHandler(qr ports.QRRenderer, log zerolog.Logger) *QuoteHandler {
	return &QuoteHandler{qr: qr, log: log}
}

func syncOf(ws *quote.Workspace) *entity.SyncStatus {
	s, ok := ws.SyncStatus()
	if !ok {
		return nil
	}
	return &s
}

// Create emite la cotización a partir del carrito.
// POST /api/quotes
func (h *QuoteHandler) Create(c *fiber.Ctx) error {
	ws := workspaceOf(c)
	if ws == nil {
		return unauthorized(c)
	}
	var in dto.CreateQuotationRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	q, err := ws.CreateQuotation(in.CustomerName, in.CustomerPhone, in.ApplyDiscount)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toQuotationResponse(q, syncOf(ws)))
}

// Current cotización emitida en la sesión.
// GET /api/quotes/current
func (h *QuoteHandler) Current(c *fiber.Ctx) error {
	ws := workspaceOf(c)
	if ws == nil {
		return unauthorized(c)
	}
	q, ok := ws.Quotation()
	if !ok {
		return respondError(c, h.log, fmt.Errorf("no hay cotización emitida: %w", domain.ErrNotFound))
	}
	return c.JSON(toQuotationResponse(q, syncOf(ws)))
}

// StartNew descarta la cotización emitida y vuelve a un carrito vacío.
// POST /api/quotes/new
func (h *QuoteHandler) StartNew(c *fiber.Ctx) error {
	ws := workspaceOf(c)
	if ws == nil {
		return unauthorized(c)
	}
	ws.StartNewQuote()
	return respondView(c, ws)
}

// Sync estado del envío al backend.
// GET /api/quotes/current/sync
func (h *QuoteHandler) Sync(c *fiber.Ctx) error {
	ws := workspaceOf(c)
	if ws == nil {
		return unauthorized(c)
	}
	s := syncOf(ws)
	if s == nil {
		return respondError(c, h.log, fmt.Errorf("sin envío registrado: %w", domain.ErrNotFound))
	}
	return c.JSON(dto.SyncStatusResponse{State: string(s.State), RemoteID: s.RemoteID, UpdatedAt: s.UpdatedAt})
}

// PDF documento imprimible de la cotización emitida.
// GET /api/quotes/current/pdf
func (h *QuoteHandler) PDF(c *fiber.Ctx) error {
	ws := workspaceOf(c)
	if ws == nil {
		return unauthorized(c)
	}
	q, pdf, err := ws.RenderPDF()
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="teklif-%s.pdf"`, q.Code))
	return c.Send(pdf)
}

// lookup la cotización emitida en la sesión, si el código coincide.
func (h *QuoteHandler) lookup(c *fiber.Ctx, code string) (entity.Quotation, *entity.SyncStatus, error) {
	if ws := workspaceOf(c); ws != nil {
		if q, ok := ws.Quotation(); ok && strings.EqualFold(q.Code, code) {
			return q, syncOf(ws), nil
		}
	}
	return entity.Quotation{}, nil, fmt.Errorf("cotización %s: %w", code, domain.ErrNotFound)
}

// GetByCode consulta la cotización emitida de la sesión por su código.
// GET /api/quotes/:code
func (h *QuoteHandler) GetByCode(c *fiber.Ctx) error {
	code := strings.ToUpper(strings.TrimSpace(c.Params("code")))
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "código requerido"})
	}
	q, s, err := h.lookup(c, code)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(toQuotationResponse(q, s))
}

// QR imagen PNG con la URL de verificación.
// GET /api/quotes/:code/qr.png?size=256
func (h *QuoteHandler) QR(c *fiber.Ctx) error {
	code := strings.ToUpper(strings.TrimSpace(c.Params("code")))
	q, _, err := h.lookup(c, code)
	if err != nil {
		return respondError(c, h.log, err)
	}
	png, err := h.qr.RenderQR(q.VerificationURL, c.QueryInt("size", 0))
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}
