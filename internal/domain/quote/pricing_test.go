package quote_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ascari-panel/internal/domain"
	"github.com/jhoicas/ascari-panel/internal/domain/entity"
	"github.com/jhoicas/ascari-panel/internal/domain/quote"
)

func sampleLines() []entity.CartLine {
	return []entity.CartLine{
		{Product: product("a", 100), Quantity: 2},
		{Product: product("b", 250), Quantity: 1},
	}
}

func TestPrice_Cuotas(t *testing.T) {
	policy := quote.DefaultPricingPolicy()

	tests := []struct {
		name       string
		discount   bool
		discounted string
	}{
		{"contado descuenta la prima", true, "391.30"},
		{"a cuotas mantiene el total de lista", false, "450.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := quote.Price(sampleLines(), tt.discount, policy)
			assert.Equal(t, entity.PricingModeInstallment, p.Mode)
			assert.True(t, p.ListTotal.Equal(decimal.NewFromInt(450)))
			assert.True(t, p.Subtotal.Equal(p.ListTotal))
			assert.Equal(t, tt.discount, p.DiscountApplied)
			assert.Equal(t, tt.discounted, p.DiscountedTotal.StringFixed(2))
			assert.True(t, p.GrandTotal.Equal(p.DiscountedTotal))
			assert.True(t, p.TaxAmount.IsZero())
		})
	}
}

func TestPrice_Impuesto(t *testing.T) {
	policy := quote.DefaultPricingPolicy()
	policy.Mode = entity.PricingModeTax

	p := quote.Price(sampleLines(), true, policy)

	assert.Equal(t, entity.PricingModeTax, p.Mode)
	assert.False(t, p.DiscountApplied, "el descuento no se mezcla con el impuesto")
	assert.True(t, p.DiscountedTotal.Equal(decimal.NewFromInt(450)))
	assert.True(t, p.TaxAmount.Equal(decimal.NewFromInt(90)))
	assert.True(t, p.GrandTotal.Equal(decimal.NewFromInt(540)))
}

func TestPrice_ProductosSinPrecio(t *testing.T) {
	lines := []entity.CartLine{{Product: product("g", 0), Quantity: 3}}
	p := quote.Price(lines, true, quote.DefaultPricingPolicy())
	assert.True(t, p.GrandTotal.IsZero())
}

func TestParsePricingPolicy(t *testing.T) {
	p, err := quote.ParsePricingPolicy("tax", "0.15", "0.18", 2)
	require.NoError(t, err)
	assert.Equal(t, "0.18", p.TaxRate.String())

	_, err = quote.ParsePricingPolicy("ambos", "0.15", "0.20", 2)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = quote.ParsePricingPolicy("installment", "abc", "0.20", 2)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = quote.ParsePricingPolicy("installment", "-0.1", "0.20", 2)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
