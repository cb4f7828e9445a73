package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateQuotationRequest body para POST /api/quotes.
type CreateQuotationRequest struct {
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	ApplyDiscount bool   `json:"apply_discount"` // pago al contado / una cuota
}

// SyncStatusResponse estado del registro de la cotización en el backend.
type SyncStatusResponse struct {
	State     string    `json:"state"`
	RemoteID  string    `json:"remote_id,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// QuotationResponse cotización emitida.
type QuotationResponse struct {
	Code            string              `json:"code"`
	CustomerName    string              `json:"customer_name"`
	CustomerPhone   string              `json:"customer_phone,omitempty"`
	IssuedAt        time.Time           `json:"issued_at"`
	PricingMode     string              `json:"pricing_mode"`
	Lines           []CartLineResponse  `json:"lines"`
	Subtotal        decimal.Decimal     `json:"subtotal"`
	ListTotal       decimal.Decimal     `json:"list_total"`
	DiscountApplied bool                `json:"discount_applied"`
	DiscountedTotal decimal.Decimal     `json:"discounted_total"`
	TaxRate         decimal.Decimal     `json:"tax_rate"`
	TaxAmount       decimal.Decimal     `json:"tax_amount"`
	GrandTotal      decimal.Decimal     `json:"grand_total"`
	VerificationURL string              `json:"verification_url"`
	Sync            *SyncStatusResponse `json:"sync,omitempty"`
}
