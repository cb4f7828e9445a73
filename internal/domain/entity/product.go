package entity

import "github.com/shopspring/decimal"

// Dimensions medidas del mueble (cm). Opcional.
type Dimensions struct {
	Width  decimal.Decimal
	Depth  decimal.Decimal
	Height decimal.Decimal
}

// Product es la ficha de un producto tal como llega del backend.
// Es inmutable una vez leída: el carrito guarda copias (Clone), no referencias.
type Product struct {
	ID           string
	Name         string
	Code         string          // referencia interna / SKU
	UnitPrice    decimal.Decimal // precio de lista (incluye la prima de cuotas en modo installment)
	StockQty     int             // solo informativo
	CategoryID   string          // categoría propia en el backend
	CategoryPath []string        // cadena de ancestros, raíz primero, termina en CategoryID
	Thumbnail    string          // imagen en base64 (puede estar vacía)
	Dimensions   *Dimensions
}

// Clone devuelve una copia profunda; así un refresco posterior del catálogo nunca
// altera una cotización ya emitida.
func (p Product) Clone() Product {
	out := p
	if p.CategoryPath != nil {
		out.CategoryPath = append([]string(nil), p.CategoryPath...)
	}
	if p.Dimensions != nil {
		d := *p.Dimensions
		out.Dimensions = &d
	}
	return out
}

// InCategory indica si categoryID aparece en la cadena de ancestros del producto.
func (p Product) InCategory(categoryID string) bool {
	for _, id := range p.CategoryPath {
		if id == categoryID {
			return true
		}
	}
	return false
}
