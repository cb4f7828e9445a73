// Package quote orquesta el armado de cotizaciones: workspace por sesión (catálogo, navegación,
// carrito), emisión de la cotización, envío best-effort al backend y render imprimible.
package quote

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/ascari-panel/internal/application/ports"
	"github.com/jhoicas/ascari-panel/internal/domain"
	"github.com/jhoicas/ascari-panel/internal/domain/entity"
	domainquote "github.com/jhoicas/ascari-panel/internal/domain/quote"
	"github.com/jhoicas/ascari-panel/pkg/phone"
)

// GeneratorConfig parámetros de emisión.
type GeneratorConfig struct {
	DefaultCustomer string // nombre cuando el cliente queda en blanco
	VerifyBaseURL   string // el QR apunta a VerifyBaseURL/<código>
	Policy          domainquote.PricingPolicy
}

// Generator materializa cotizaciones a partir de un carrito. Es compartido por todas las sesiones.
type Generator struct {
	cfg      GeneratorConfig
	codes    *domainquote.CodeGenerator
	renderer ports.QuotationRenderer
	now      func() time.Time
}

// NewGenerator construye el generador.
func NewGenerator(cfg GeneratorConfig, codes *domainquote.CodeGenerator, renderer ports.QuotationRenderer) *Generator {
	cfg.VerifyBaseURL = strings.TrimRight(cfg.VerifyBaseURL, "/")
	return &Generator{cfg: cfg, codes: codes, renderer: renderer, now: time.Now}
}

// Policy política de precios activa.
func (g *Generator) Policy() domainquote.PricingPolicy { return g.cfg.Policy }

// CreateQuotation emite una cotización inmutable. Rechaza el carrito vacío antes de tocar nada.
func (g *Generator) CreateQuotation(cart *domainquote.Cart, customerName, customerPhone string, applyDiscount bool) (entity.Quotation, error) {
	if cart == nil || cart.IsEmpty() {
		return entity.Quotation{}, domain.ErrEmptyCart
	}

	name := strings.TrimSpace(customerName)
	if name == "" {
		name = g.cfg.DefaultCustomer
	}

	lines := cart.Lines()
	pricing := domainquote.Price(lines, applyDiscount, g.cfg.Policy)
	code := g.codes.Next()

	return entity.Quotation{
		Code:            code,
		CustomerName:    name,
		CustomerPhone:   phone.NormalizeE164(customerPhone),
		IssuedAt:        g.now(),
		Lines:           lines,
		PricingMode:     pricing.Mode,
		Subtotal:        pricing.Subtotal,
		ListTotal:       pricing.ListTotal,
		DiscountApplied: pricing.DiscountApplied,
		DiscountedTotal: pricing.DiscountedTotal,
		TaxRate:         pricing.TaxRate,
		TaxAmount:       pricing.TaxAmount,
		GrandTotal:      pricing.GrandTotal,
		VerificationURL: g.VerificationURL(code),
	}, nil
}

// VerificationURL URL que codifica el QR de la cotización.
func (g *Generator) VerificationURL(code string) string {
	return g.cfg.VerifyBaseURL + "/" + code
}

// Render documento imprimible (PDF). Sin efectos secundarios.
func (g *Generator) Render(q entity.Quotation) ([]byte, error) {
	if len(q.Lines) == 0 {
		return nil, domain.ErrEmptyCart
	}
	if g.renderer == nil {
		return nil, fmt.Errorf("render: no hay renderizador configurado")
	}
	return g.renderer.RenderQuotation(q.Clone())
}
