// Package quote contiene el carrito, el motor de precios y el generador de códigos de cotización.
// Todo es puro y en memoria: la red queda fuera de este paquete.
package quote

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ascari-panel/internal/domain/entity"
)

// Cart líneas seleccionadas antes de emitir la cotización. Una línea por producto, cantidad >= 1,
// orden de inserción preservado. No es seguro para uso concurrente; lo protege el workspace.
type Cart struct {
	order []string
	lines map[string]*entity.CartLine
}

// NewCart carrito vacío.
func NewCart() *Cart {
	return &Cart{lines: map[string]*entity.CartLine{}}
}

// Add suma una unidad si el producto ya está; si no, crea la línea con cantidad 1.
// Guarda una copia del producto. El stock es informativo y no limita la cantidad.
func (c *Cart) Add(p entity.Product) {
	if l, ok := c.lines[p.ID]; ok {
		l.Quantity++
		return
	}
	c.lines[p.ID] = &entity.CartLine{Product: p.Clone(), Quantity: 1}
	c.order = append(c.order, p.ID)
}

// SetQuantity fija la cantidad con piso 1. No-op si el producto no está en el carrito.
func (c *Cart) SetQuantity(productID string, quantity int) {
	l, ok := c.lines[productID]
	if !ok {
		return
	}
	if quantity < 1 {
		quantity = 1
	}
	l.Quantity = quantity
}

// Decrement resta una unidad sin bajar de 1.
func (c *Cart) Decrement(productID string) {
	if l, ok := c.lines[productID]; ok {
		c.SetQuantity(productID, l.Quantity-1)
	}
}

// Remove elimina la línea; no-op si no existe.
func (c *Cart) Remove(productID string) {
	if _, ok := c.lines[productID]; !ok {
		return
	}
	delete(c.lines, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Clear vacía el carrito.
func (c *Cart) Clear() {
	c.order = nil
	c.lines = map[string]*entity.CartLine{}
}

// Total Σ(precio unitario × cantidad).
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.LineTotal())
	}
	return total
}

// Lines copia de las líneas en orden de inserción.
func (c *Cart) Lines() []entity.CartLine {
	out := make([]entity.CartLine, 0, len(c.order))
	for _, id := range c.order {
		l := c.lines[id]
		out = append(out, entity.CartLine{Product: l.Product.Clone(), Quantity: l.Quantity})
	}
	return out
}

// Line devuelve la línea de un producto.
func (c *Cart) Line(productID string) (entity.CartLine, bool) {
	l, ok := c.lines[productID]
	if !ok {
		return entity.CartLine{}, false
	}
	return entity.CartLine{Product: l.Product.Clone(), Quantity: l.Quantity}, true
}

// Len número de líneas.
func (c *Cart) Len() int { return len(c.order) }

// IsEmpty indica si no hay líneas.
func (c *Cart) IsEmpty() bool { return len(c.order) == 0 }
