package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryRowResponse fila visible del árbol de categorías.
type CategoryRowResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Depth       int    `json:"depth"`
	HasChildren bool   `json:"has_children"`
	Expanded    bool   `json:"expanded"`
	Selected    bool   `json:"selected"`
}

// DimensionsResponse medidas en cm.
type DimensionsResponse struct {
	Width  decimal.Decimal `json:"width"`
	Depth  decimal.Decimal `json:"depth"`
	Height decimal.Decimal `json:"height"`
}

// ProductResponse producto del catálogo.
type ProductResponse struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Code         string              `json:"code"`
	UnitPrice    decimal.Decimal     `json:"unit_price"`
	StockQty     int                 `json:"stock_qty"`
	CategoryID   string              `json:"category_id,omitempty"`
	CategoryPath []string            `json:"category_path"`
	Thumbnail    string              `json:"thumbnail,omitempty"`
	Dimensions   *DimensionsResponse `json:"dimensions,omitempty"`
}

// CartLineResponse línea del carrito.
type CartLineResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Code      string          `json:"code"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// WorkspaceResponse estado completo de la pantalla de cotización rápida.
type WorkspaceResponse struct {
	State         string                `json:"state"`
	CatalogLoaded bool                  `json:"catalog_loaded"`
	CatalogError  bool                  `json:"catalog_error"`
	SearchError   bool                  `json:"search_error"`
	LastSync      *time.Time            `json:"last_sync,omitempty"`
	ActiveFilter  string                `json:"active_filter"`
	Query         string                `json:"query"`
	RemoteSearch  string                `json:"remote_search,omitempty"`
	Tree          []CategoryRowResponse `json:"tree"`
	Products      []ProductResponse     `json:"products"`
	Cart          []CartLineResponse    `json:"cart"`
	CartTotal     decimal.Decimal       `json:"cart_total"`
	Quotation     *QuotationResponse    `json:"quotation,omitempty"`
}

// SelectCategoryRequest body para POST /api/catalog/filter ("" limpia el filtro).
type SelectCategoryRequest struct {
	CategoryID string `json:"category_id"`
}

// QueryRequest body para búsquedas y filtro de texto.
type QueryRequest struct {
	Query string `json:"query"`
}

// CartItemRequest body para agregar o cambiar la cantidad de un producto.
type CartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity,omitempty"`
}
