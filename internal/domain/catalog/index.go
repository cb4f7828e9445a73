// Package catalog contiene el índice del catálogo (árbol de categorías + lista plana de productos)
// y el navegador de categorías que filtra la vista de productos.
package catalog

import (
	"fmt"

	"github.com/jhoicas/ascari-panel/internal/domain"
	"github.com/jhoicas/ascari-panel/internal/domain/entity"
)

// Index árbol de categorías y productos de una sincronización. No se modifica tras construirse;
// un refresco del catálogo produce un Index nuevo.
type Index struct {
	roots       []*entity.Category
	byID        map[string]*entity.Category
	products    []entity.Product
	productByID map[string]int
}

// EmptyIndex índice sin datos (antes de la primera sincronización).
func EmptyIndex() *Index {
	return &Index{
		byID:        map[string]*entity.Category{},
		productByID: map[string]int{},
	}
}

// BuildIndex arma el árbol a partir de registros planos (ID + ParentID) y completa la ruta de
// categorías de cada producto.
//
// Reglas:
//   - IDs vacíos se ignoran; IDs duplicados son ErrInvalidInput.
//   - Un padre inexistente convierte al nodo en raíz.
//   - Cualquier ciclo en ParentID es ErrCategoryCycle.
//   - Productos sin CategoryPath y con CategoryID conocido reciben la cadena de ancestros.
func BuildIndex(categories []entity.Category, products []entity.Product) (*Index, error) {
	idx := EmptyIndex()

	order := make([]string, 0, len(categories))
	for _, c := range categories {
		if c.ID == "" {
			continue
		}
		if _, dup := idx.byID[c.ID]; dup {
			return nil, fmt.Errorf("%w: categoría duplicada %q", domain.ErrInvalidInput, c.ID)
		}
		idx.byID[c.ID] = &entity.Category{ID: c.ID, Name: c.Name, ParentID: c.ParentID}
		order = append(order, c.ID)
	}

	if err := idx.checkCycles(order); err != nil {
		return nil, err
	}

	for _, id := range order {
		node := idx.byID[id]
		parent, ok := idx.byID[node.ParentID]
		if node.ParentID == "" || !ok {
			node.ParentID = ""
			idx.roots = append(idx.roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	idx.products = make([]entity.Product, 0, len(products))
	for _, p := range products {
		if p.ID == "" {
			continue
		}
		if _, dup := idx.productByID[p.ID]; dup {
			continue
		}
		cp := p.Clone()
		if len(cp.CategoryPath) == 0 && cp.CategoryID != "" {
			cp.CategoryPath = idx.Ancestors(cp.CategoryID)
		}
		idx.productByID[cp.ID] = len(idx.products)
		idx.products = append(idx.products, cp)
	}
	return idx, nil
}

// checkCycles recorre la cadena de padres de cada nodo; estado 1 = en la cadena actual, 2 = resuelto.
func (idx *Index) checkCycles(order []string) error {
	state := make(map[string]int, len(order))
	for _, start := range order {
		if state[start] == 2 {
			continue
		}
		var chain []string
		id := start
		for id != "" {
			node, ok := idx.byID[id]
			if !ok || state[id] == 2 {
				break
			}
			if state[id] == 1 {
				return fmt.Errorf("%w: nodo %q", domain.ErrCategoryCycle, id)
			}
			state[id] = 1
			chain = append(chain, id)
			id = node.ParentID
		}
		for _, c := range chain {
			state[c] = 2
		}
	}
	return nil
}

// Roots nodos raíz en el orden recibido. Los nodos son de solo lectura.
func (idx *Index) Roots() []*entity.Category {
	return append([]*entity.Category(nil), idx.roots...)
}

// Category busca un nodo por ID.
func (idx *Index) Category(id string) (*entity.Category, bool) {
	c, ok := idx.byID[id]
	return c, ok
}

// HasCategory indica si el ID existe en el árbol.
func (idx *Index) HasCategory(id string) bool {
	_, ok := idx.byID[id]
	return ok
}

// Ancestors cadena raíz → id (incluido). Vacía si id no existe.
func (idx *Index) Ancestors(id string) []string {
	var rev []string
	for id != "" {
		node, ok := idx.byID[id]
		if !ok {
			break
		}
		rev = append(rev, id)
		id = node.ParentID
	}
	out := make([]string, len(rev))
	for i, v := range rev {
		out[len(rev)-1-i] = v
	}
	return out
}

// Products copia de la lista plana de productos.
func (idx *Index) Products() []entity.Product {
	out := make([]entity.Product, len(idx.products))
	for i, p := range idx.products {
		out[i] = p.Clone()
	}
	return out
}

// Product busca un producto por ID (copia).
func (idx *Index) Product(id string) (entity.Product, bool) {
	i, ok := idx.productByID[id]
	if !ok {
		return entity.Product{}, false
	}
	return idx.products[i].Clone(), true
}

// CategoryCount número de categorías.
func (idx *Index) CategoryCount() int { return len(idx.byID) }

// ProductCount número de productos.
func (idx *Index) ProductCount() int { return len(idx.products) }

// WithPaths completa CategoryPath en productos que llegan fuera del índice (resultados de búsqueda).
func (idx *Index) WithPaths(products []entity.Product) []entity.Product {
	out := make([]entity.Product, len(products))
	for i, p := range products {
		cp := p.Clone()
		if len(cp.CategoryPath) == 0 && cp.CategoryID != "" {
			cp.CategoryPath = idx.Ancestors(cp.CategoryID)
		}
		out[i] = cp
	}
	return out
}
