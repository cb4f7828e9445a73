package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ascari-panel/internal/domain/entity"
)

// EntityKind tipo de registro que se puede buscar en el backend de gestión.
type EntityKind string

const (
	KindProduct  EntityKind = "product"
	KindCustomer EntityKind = "customer"
	KindOrder    EntityKind = "order"
	KindInvoice  EntityKind = "invoice"
	KindTicket   EntityKind = "ticket"
)

// ParseEntityKind valida el tipo recibido por la API.
func ParseEntityKind(s string) (EntityKind, bool) {
	switch k := EntityKind(s); k {
	case KindProduct, KindCustomer, KindOrder, KindInvoice, KindTicket:
		return k, true
	}
	return "", false
}

// Catalog árbol de categorías (registros planos con ParentID) y productos de una sincronización.
type Catalog struct {
	Categories []entity.Category
	Products   []entity.Product
}

// Record registro genérico (cliente, pedido, factura, ticket) ya tipado por el adaptador.
type Record struct {
	ID        string
	Kind      EntityKind
	Title     string // nombre o número del documento
	Partner   string // cliente asociado
	Email     string
	Phone     string
	Address   string
	Amount    decimal.Decimal // total o saldo según el tipo
	State     string
	Date      time.Time
	Reference string
}

// SearchResult resultado de Search. Products solo se llena para KindProduct.
type SearchResult struct {
	Kind     EntityKind
	Records  []Record
	Products []entity.Product
}

// QuotationLinePayload línea enviada al backend.
type QuotationLinePayload struct {
	ProductID string
	Name      string
	Code      string
	Quantity  int
	UnitPrice decimal.Decimal
}

// QuotationPayload forma de la cotización que viaja al backend.
type QuotationPayload struct {
	Code            string
	CustomerName    string
	CustomerPhone   string
	IssuedAt        time.Time
	PricingMode     entity.PricingMode
	Lines           []QuotationLinePayload
	ListTotal       decimal.Decimal
	DiscountApplied bool
	GrandTotal      decimal.Decimal
}

// PayloadFromQuotation proyecta la cotización al payload del backend.
func PayloadFromQuotation(q entity.Quotation) QuotationPayload {
	lines := make([]QuotationLinePayload, 0, len(q.Lines))
	for _, l := range q.Lines {
		lines = append(lines, QuotationLinePayload{
			ProductID: l.Product.ID,
			Name:      l.Product.Name,
			Code:      l.Product.Code,
			Quantity:  l.Quantity,
			UnitPrice: l.Product.UnitPrice,
		})
	}
	return QuotationPayload{
		Code:            q.Code,
		CustomerName:    q.CustomerName,
		CustomerPhone:   q.CustomerPhone,
		IssuedAt:        q.IssuedAt,
		PricingMode:     q.PricingMode,
		Lines:           lines,
		ListTotal:       q.ListTotal,
		DiscountApplied: q.DiscountApplied,
		GrandTotal:      q.GrandTotal,
	}
}

// SubmitResult respuesta del backend al registrar una cotización.
type SubmitResult struct {
	Success  bool
	RemoteID string
}

// SessionGateway único componente que habla con la red. Una instancia está ligada a una sesión
// autenticada; el resto del sistema solo conoce este contrato.
type SessionGateway interface {
	FetchCatalog(ctx context.Context) (Catalog, error)
	Search(ctx context.Context, kind EntityKind, query string) (SearchResult, error)
	SubmitQuotation(ctx context.Context, payload QuotationPayload) (SubmitResult, error)
}

// Connection sesión abierta contra el backend.
type Connection struct {
	UID           int
	BackendURL    string // URL final tras normalizar (y bajar a http si hizo falta)
	ServerVersion string
	Gateway       SessionGateway
}

// Connector autentica credenciales y devuelve un gateway ligado a ellas.
type Connector interface {
	Connect(ctx context.Context, creds entity.Credentials) (*Connection, error)
}
