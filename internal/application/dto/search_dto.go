package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordResponse registro genérico de búsqueda (cliente, pedido, factura, ticket).
type RecordResponse struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Partner   string          `json:"partner,omitempty"`
	Email     string          `json:"email,omitempty"`
	Phone     string          `json:"phone,omitempty"`
	Address   string          `json:"address,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	State     string          `json:"state,omitempty"`
	Date      *time.Time      `json:"date,omitempty"`
	Reference string          `json:"reference,omitempty"`
}

// SearchResponse salida de GET /api/search/:kind.
type SearchResponse struct {
	Kind     string            `json:"kind"`
	Query    string            `json:"query"`
	Records  []RecordResponse  `json:"records,omitempty"`
	Products []ProductResponse `json:"products,omitempty"`
}
