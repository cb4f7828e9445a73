package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/ascari-panel/internal/domain/entity"
)

// TreeRow una fila visible del árbol de categorías, ya proyectada para la interfaz.
type TreeRow struct {
	ID          string
	Name        string
	Depth       int
	HasChildren bool
	Expanded    bool
	Selected    bool
}

// Navigator estado de navegación del árbol: qué nodos están expandidos, el filtro activo y
// el texto de búsqueda. Solo guarda IDs; nunca modifica el árbol.
// Estado inicial: todos los nodos colapsados, sin filtro.
type Navigator struct {
	expanded map[string]bool
	filter   string
	query    string
}

// NewNavigator construye el navegador en su estado inicial.
func NewNavigator() *Navigator {
	return &Navigator{expanded: map[string]bool{}}
}

// ToggleExpand alterna expandido/colapsado. No-op si el nodo no existe o no tiene hijos.
func (n *Navigator) ToggleExpand(idx *Index, categoryID string) {
	node, ok := idx.Category(categoryID)
	if !ok || !node.HasChildren() {
		return
	}
	if n.expanded[categoryID] {
		delete(n.expanded, categoryID)
		return
	}
	n.expanded[categoryID] = true
}

// IsExpanded estado del nodo.
func (n *Navigator) IsExpanded(categoryID string) bool {
	return n.expanded[categoryID]
}

// SelectFilter fija el filtro activo; "" lo limpia. IDs desconocidos no cambian nada.
func (n *Navigator) SelectFilter(idx *Index, categoryID string) {
	if categoryID == "" {
		n.filter = ""
		return
	}
	if !idx.HasCategory(categoryID) {
		return
	}
	n.filter = categoryID
}

// ActiveFilter filtro activo ("" = sin filtro).
func (n *Navigator) ActiveFilter() string { return n.filter }

// SetQuery texto de búsqueda local sobre nombre y código.
func (n *Navigator) SetQuery(q string) { n.query = strings.TrimSpace(q) }

// Query texto de búsqueda actual.
func (n *Navigator) Query() string { return n.query }

// Prune descarta estado que ya no existe tras un refresco del catálogo.
func (n *Navigator) Prune(idx *Index) {
	for id := range n.expanded {
		if !idx.HasCategory(id) {
			delete(n.expanded, id)
		}
	}
	if n.filter != "" && !idx.HasCategory(n.filter) {
		n.filter = ""
	}
}

// Visible aplica filtro de categoría y búsqueda sobre products.
func (n *Navigator) Visible(products []entity.Product) []entity.Product {
	return MatchQuery(VisibleProducts(products, n.filter), n.query)
}

// VisibleProducts productos cuya ruta contiene activeFilter, o todos si activeFilter es "".
// Los productos sin ruta nunca coinciden con un filtro.
func VisibleProducts(products []entity.Product, activeFilter string) []entity.Product {
	out := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if activeFilter == "" || p.InCategory(activeFilter) {
			out = append(out, p)
		}
	}
	return out
}

// MatchQuery filtra por nombre o código, sin distinguir mayúsculas con las reglas del turco
// (I/ı, İ/i).
func MatchQuery(products []entity.Product, query string) []entity.Product {
	if query == "" {
		return products
	}
	fold := cases.Lower(language.Turkish)
	q := fold.String(query)
	out := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(fold.String(p.Name), q) || strings.Contains(fold.String(p.Code), q) {
			out = append(out, p)
		}
	}
	return out
}

// VisibleTree recorre el árbol en preorden con una pila explícita y devuelve las filas visibles:
// los descendientes de un nodo colapsado no aparecen.
func (n *Navigator) VisibleTree(idx *Index) []TreeRow {
	type frame struct {
		node  *entity.Category
		depth int
	}
	roots := idx.Roots()
	stack := make([]frame, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, frame{node: roots[i]})
	}

	var rows []TreeRow
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		expanded := n.expanded[f.node.ID]
		rows = append(rows, TreeRow{
			ID:          f.node.ID,
			Name:        f.node.Name,
			Depth:       f.depth,
			HasChildren: f.node.HasChildren(),
			Expanded:    expanded,
			Selected:    f.node.ID == n.filter,
		})
		if !expanded {
			continue
		}
		for i := len(f.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: f.node.Children[i], depth: f.depth + 1})
		}
	}
	return rows
}
