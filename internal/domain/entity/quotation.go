package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PricingMode modo de precios con el que se calculó una cotización. Los dos modos son excluyentes.
type PricingMode string

const (
	// PricingModeInstallment: el precio de lista incluye la prima de cuotas; el pago al contado la descuenta.
	PricingModeInstallment PricingMode = "installment"
	// PricingModeTax: se suma un impuesto plano sobre el total de lista.
	PricingModeTax PricingMode = "tax"
)

// CartLine una línea del carrito: copia del producto + cantidad (>= 1).
type CartLine struct {
	Product  Product
	Quantity int
}

// LineTotal precio unitario × cantidad.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.Product.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Quotation documento de cotización emitido a partir de un carrito. Inmutable tras su creación:
// quien la recibe obtiene siempre una copia (Clone).
type Quotation struct {
	Code            string
	CustomerName    string
	CustomerPhone   string
	IssuedAt        time.Time
	Lines           []CartLine
	PricingMode     PricingMode
	Subtotal        decimal.Decimal
	ListTotal       decimal.Decimal
	DiscountApplied bool
	DiscountedTotal decimal.Decimal
	TaxRate         decimal.Decimal // solo en PricingModeTax
	TaxAmount       decimal.Decimal // solo en PricingModeTax
	GrandTotal      decimal.Decimal // importe a pagar según el modo
	VerificationURL string
}

// Clone copia profunda de la cotización.
func (q Quotation) Clone() Quotation {
	out := q
	out.Lines = make([]CartLine, len(q.Lines))
	for i, l := range q.Lines {
		out.Lines[i] = CartLine{Product: l.Product.Clone(), Quantity: l.Quantity}
	}
	return out
}
