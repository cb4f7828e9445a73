package catalog_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ascari-panel/internal/domain"
	"github.com/jhoicas/ascari-panel/internal/domain/catalog"
	"github.com/jhoicas/ascari-panel/internal/domain/entity"
)

// sampleIndex arma Root → {A → {A1}, B} con p1(A1), p2(B), p3(sin categoría).
func sampleIndex(t *testing.T) *catalog.Index {
	t.Helper()
	cats := []entity.Category{
		{ID: "root", Name: "Tümü"},
		{ID: "A", Name: "Oturma Grubu", ParentID: "root"},
		{ID: "A1", Name: "Koltuk", ParentID: "A"},
		{ID: "B", Name: "Yatak Odası", ParentID: "root"},
	}
	products := []entity.Product{
		{ID: "p1", Name: "Chester Koltuk", Code: "CH-01", UnitPrice: decimal.NewFromInt(100), CategoryID: "A1"},
		{ID: "p2", Name: "Baza", Code: "BZ-02", UnitPrice: decimal.NewFromInt(250), CategoryID: "B"},
		{ID: "p3", Name: "Hediye Kartı", Code: "GC", UnitPrice: decimal.Zero},
	}
	idx, err := catalog.BuildIndex(cats, products)
	require.NoError(t, err)
	return idx
}

func TestBuildIndex_ArmaArbolYRutas(t *testing.T) {
	idx := sampleIndex(t)

	roots := idx.Roots()
	require.Len(t, roots, 1)
	assert.Equal(t, "root", roots[0].ID)
	require.Len(t, roots[0].Children, 2)
	assert.Equal(t, "A", roots[0].Children[0].ID)
	assert.Equal(t, "B", roots[0].Children[1].ID)

	p1, ok := idx.Product("p1")
	require.True(t, ok)
	assert.Equal(t, []string{"root", "A", "A1"}, p1.CategoryPath)

	p3, _ := idx.Product("p3")
	assert.Empty(t, p3.CategoryPath)
	assert.Equal(t, 4, idx.CategoryCount())
	assert.Equal(t, 3, idx.ProductCount())
}

func TestBuildIndex_PadreInexistenteEsRaiz(t *testing.T) {
	idx, err := catalog.BuildIndex([]entity.Category{{ID: "x", ParentID: "fantasma"}}, nil)
	require.NoError(t, err)
	require.Len(t, idx.Roots(), 1)
	assert.Equal(t, []string{"x"}, idx.Ancestors("x"))
}

func TestBuildIndex_RechazaCiclos(t *testing.T) {
	cases := map[string][]entity.Category{
		"auto referencia": {{ID: "a", ParentID: "a"}},
		"ciclo de tres": {
			{ID: "a", ParentID: "c"},
			{ID: "b", ParentID: "a"},
			{ID: "c", ParentID: "b"},
		},
	}
	for name, cats := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := catalog.BuildIndex(cats, nil)
			assert.ErrorIs(t, err, domain.ErrCategoryCycle)
		})
	}
}

func TestBuildIndex_RechazaDuplicados(t *testing.T) {
	_, err := catalog.BuildIndex([]entity.Category{{ID: "a"}, {ID: "a"}}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIndex_ProductsDevuelveCopias(t *testing.T) {
	idx := sampleIndex(t)
	list := idx.Products()
	list[0].Name = "cambiado"
	list[0].CategoryPath[0] = "otro"

	p1, _ := idx.Product("p1")
	assert.Equal(t, "Chester Koltuk", p1.Name)
	assert.Equal(t, "root", p1.CategoryPath[0])
}

func TestIndex_WithPathsCompletaResultadosExternos(t *testing.T) {
	idx := sampleIndex(t)
	out := idx.WithPaths([]entity.Product{{ID: "p9", CategoryID: "A"}})
	assert.Equal(t, []string{"root", "A"}, out[0].CategoryPath)
}
