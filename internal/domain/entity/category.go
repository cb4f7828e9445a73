package entity

// Category representa un nodo del árbol de categorías del catálogo.
// ParentID viene del backend (registro plano); Children lo arma el índice del catálogo.
type Category struct {
	ID       string
	Name     string
	ParentID string // vacío si es raíz
	Children []*Category
}

// HasChildren indica si el nodo puede expandirse.
func (c *Category) HasChildren() bool {
	return c != nil && len(c.Children) > 0
}
