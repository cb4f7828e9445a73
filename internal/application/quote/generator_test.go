package quote_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ascari-panel/internal/domain"
	"github.com/jhoicas/ascari-panel/internal/domain/entity"
	domainquote "github.com/jhoicas/ascari-panel/internal/domain/quote"
)

func TestGenerator_CarritoVacio(t *testing.T) {
	g := newGenerator(&stubRenderer{})

	_, err := g.CreateQuotation(domainquote.NewCart(), "Ali", "", false)
	assert.ErrorIs(t, err, domain.ErrEmptyCart)

	_, err = g.CreateQuotation(nil, "Ali", "", false)
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestGenerator_CreateQuotation(t *testing.T) {
	g := newGenerator(&stubRenderer{})
	cart := domainquote.NewCart()
	for _, p := range sampleCatalog().Products[:2] {
		cart.Add(p)
	}
	cart.SetQuantity("p1", 2)

	q, err := g.CreateQuotation(cart, "   ", "0532 123 45 67", true)
	require.NoError(t, err)

	assert.Equal(t, "Müşteri", q.CustomerName)
	assert.Equal(t, "+905321234567", q.CustomerPhone)
	assert.True(t, strings.HasPrefix(q.Code, "ASC-"))
	assert.Equal(t, "https://ascari.com.tr/t/"+q.Code, q.VerificationURL)
	assert.Equal(t, entity.PricingModeInstallment, q.PricingMode)
	assert.True(t, q.ListTotal.Equal(decimal.NewFromInt(450)))
	assert.Equal(t, "391.30", q.DiscountedTotal.StringFixed(2))
	assert.True(t, q.DiscountApplied)
	require.Len(t, q.Lines, 2)
	assert.Equal(t, "p1", q.Lines[0].Product.ID)
	assert.False(t, q.IssuedAt.IsZero())
}

func TestGenerator_RenderEsIdempotente(t *testing.T) {
	r := &stubRenderer{}
	g := newGenerator(r)
	cart := domainquote.NewCart()
	cart.Add(sampleCatalog().Products[0])
	q, err := g.CreateQuotation(cart, "Ayşe", "", false)
	require.NoError(t, err)

	a, err := g.Render(q)
	require.NoError(t, err)
	b, err := g.Render(q)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, 2, r.calls)

	_, err = g.Render(entity.Quotation{})
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}
