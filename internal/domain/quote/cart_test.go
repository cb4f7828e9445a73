package quote_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ascari-panel/internal/domain/entity"
	"github.com/jhoicas/ascari-panel/internal/domain/quote"
)

func product(id string, price int64) entity.Product {
	return entity.Product{ID: id, Name: "Ürün " + id, Code: "C-" + id, UnitPrice: decimal.NewFromInt(price), CategoryPath: []string{"root"}}
}

func TestCart_AddEsIdempotentePorProducto(t *testing.T) {
	c := quote.NewCart()
	p := product("p", 100)

	c.Add(p)
	c.Add(p)

	require.Equal(t, 1, c.Len())
	line, ok := c.Line("p")
	require.True(t, ok)
	assert.Equal(t, 2, line.Quantity)
}

func TestCart_PisoDeCantidad(t *testing.T) {
	c := quote.NewCart()
	c.Add(product("p", 10))

	for _, q := range []int{0, -1, -50} {
		c.SetQuantity("p", q)
		line, ok := c.Line("p")
		require.True(t, ok, "la línea nunca se elimina por cantidad")
		assert.Equal(t, 1, line.Quantity)
	}

	c.SetQuantity("p", 7)
	c.Decrement("p")
	line, _ := c.Line("p")
	assert.Equal(t, 6, line.Quantity)

	c.SetQuantity("p", 1)
	c.Decrement("p")
	line, _ = c.Line("p")
	assert.Equal(t, 1, line.Quantity)
}

func TestCart_OperacionesSobreProductoAusente(t *testing.T) {
	c := quote.NewCart()
	c.SetQuantity("x", 3)
	c.Decrement("x")
	c.Remove("x")
	assert.True(t, c.IsEmpty())
}

func TestCart_OrdenDeInsercionYTotal(t *testing.T) {
	c := quote.NewCart()
	c.Add(product("b", 250))
	c.Add(product("a", 100))
	c.Add(product("a", 100))
	c.Add(product("z", 0))

	ids := []string{}
	for _, l := range c.Lines() {
		ids = append(ids, l.Product.ID)
	}
	assert.Equal(t, []string{"b", "a", "z"}, ids)
	assert.True(t, c.Total().Equal(decimal.NewFromInt(450)))

	c.Remove("a")
	assert.Equal(t, 2, c.Len())
	assert.True(t, c.Total().Equal(decimal.NewFromInt(250)))

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.True(t, c.Total().IsZero())
}

func TestCart_GuardaCopiaDelProducto(t *testing.T) {
	c := quote.NewCart()
	p := product("p", 100)
	c.Add(p)

	p.Name = "cambiado"
	p.CategoryPath[0] = "otro"
	lines := c.Lines()
	lines[0].Quantity = 99

	line, _ := c.Line("p")
	assert.Equal(t, "Ürün p", line.Product.Name)
	assert.Equal(t, "root", line.Product.CategoryPath[0])
	assert.Equal(t, 1, line.Quantity)
}
