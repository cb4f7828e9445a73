package quote

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ascari-panel/internal/application/ports"
	"github.com/jhoicas/ascari-panel/internal/domain"
	"github.com/jhoicas/ascari-panel/internal/domain/catalog"
	"github.com/jhoicas/ascari-panel/internal/domain/entity"
	domainquote "github.com/jhoicas/ascari-panel/internal/domain/quote"
)

// State estado de la cotización en curso.
type State string

const (
	StateBuilding  State = "building"  // carrito abierto
	StateFinalized State = "finalized" // cotización emitida; el carrito queda bloqueado
)

// View proyección de solo lectura del workspace para la interfaz.
type View struct {
	State         State
	CatalogLoaded bool
	LastSync      time.Time
	CatalogError  bool // el último refresco falló; se muestra el catálogo anterior
	SearchError   bool // la última búsqueda remota falló; se mantiene la lista anterior
	Tree          []catalog.TreeRow
	ActiveFilter  string
	Query         string
	RemoteSearch  string // consulta remota vigente ("" = catálogo completo)
	Products      []entity.Product
	Cart          []entity.CartLine
	CartTotal     decimal.Decimal
	Quotation     *entity.Quotation
}

// Workspace estado de una sesión de vendedor: catálogo, navegación, carrito y la cotización emitida.
// Un solo escritor lógico; el mutex serializa las peticiones HTTP de la misma sesión.
// Las llamadas al gateway se hacen sin el lock y su resultado solo se aplica si su ticket
// sigue siendo el último emitido para esa vista.
type Workspace struct {
	gateway    ports.SessionGateway
	generator  *Generator
	dispatcher *Dispatcher
	log        zerolog.Logger

	mu        sync.Mutex
	index     *catalog.Index
	nav       *catalog.Navigator
	cart      *domainquote.Cart
	state     State
	quotation *entity.Quotation

	refreshTicket uint64
	searchTicket  uint64
	searchQuery   string
	searchResults []entity.Product // nil = sin búsqueda remota activa
	lastSync      time.Time
	catalogErr    bool
	searchErr     bool
}

// NewWorkspace workspace vacío ligado al gateway de la sesión.
func NewWorkspace(gw ports.SessionGateway, gen *Generator, disp *Dispatcher, log zerolog.Logger) *Workspace {
	return &Workspace{
		gateway:    gw,
		generator:  gen,
		dispatcher: disp,
		log:        log,
		index:      catalog.EmptyIndex(),
		nav:        catalog.NewNavigator(),
		cart:       domainquote.NewCart(),
		state:      StateBuilding,
	}
}

// ─── Catálogo ───────────────────────────────────────────────────────────────

// RefreshCatalog trae el catálogo completo. Si falla se conserva el último conocido.
// Un refresco superado por otro más reciente se descarta.
func (w *Workspace) RefreshCatalog(ctx context.Context) error {
	w.mu.Lock()
	w.refreshTicket++
	ticket := w.refreshTicket
	w.mu.Unlock()

	cat, err := w.gateway.FetchCatalog(ctx)
	var idx *catalog.Index
	if err == nil {
		idx, err = catalog.BuildIndex(cat.Categories, cat.Products)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if ticket != w.refreshTicket {
		w.log.Debug().Uint64("ticket", ticket).Msg("refresco de catálogo superado, se descarta")
		return nil
	}
	if err != nil {
		w.catalogErr = true
		w.log.Warn().Err(err).Msg("no se pudo refrescar el catálogo; se mantiene el anterior")
		return fmt.Errorf("refrescar catálogo: %w", err)
	}
	w.index = idx
	w.nav.Prune(idx)
	w.catalogErr = false
	w.lastSync = time.Now()
	if w.searchResults != nil {
		w.searchResults = idx.WithPaths(w.searchResults)
	}
	w.log.Info().Int("categories", idx.CategoryCount()).Int("products", idx.ProductCount()).Msg("catálogo actualizado")
	return nil
}

// SearchProducts consulta el backend más allá del catálogo local y reemplaza la lista de productos.
// Consulta vacía vuelve al catálogo completo.
func (w *Workspace) SearchProducts(ctx context.Context, query string) error {
	if query == "" {
		w.ClearSearch()
		return nil
	}
	w.mu.Lock()
	w.searchTicket++
	ticket := w.searchTicket
	w.mu.Unlock()

	res, err := w.gateway.Search(ctx, ports.KindProduct, query)

	w.mu.Lock()
	defer w.mu.Unlock()
	if ticket != w.searchTicket {
		w.log.Debug().Uint64("ticket", ticket).Str("query", query).Msg("búsqueda superada, se descarta")
		return nil
	}
	if err != nil {
		w.searchErr = true
		w.log.Warn().Err(err).Str("query", query).Msg("búsqueda de productos fallida; se mantiene la lista anterior")
		return fmt.Errorf("buscar productos: %w", err)
	}
	w.searchErr = false
	w.searchQuery = query
	w.searchResults = w.index.WithPaths(res.Products)
	return nil
}

// ClearSearch vuelve al catálogo completo e invalida búsquedas en curso.
func (w *Workspace) ClearSearch() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.searchTicket++
	w.searchErr = false
	w.searchQuery = ""
	w.searchResults = nil
}

// SearchRecords búsqueda genérica de registros (clientes, pedidos, facturas, tickets).
// Para productos actualiza además la lista del workspace.
func (w *Workspace) SearchRecords(ctx context.Context, kind ports.EntityKind, query string) (ports.SearchResult, error) {
	if kind == ports.KindProduct {
		if err := w.SearchProducts(ctx, query); err != nil {
			return ports.SearchResult{}, err
		}
		w.mu.Lock()
		defer w.mu.Unlock()
		return ports.SearchResult{Kind: kind, Products: w.currentProducts()}, nil
	}
	res, err := w.gateway.Search(ctx, kind, query)
	if err != nil {
		w.log.Warn().Err(err).Str("kind", string(kind)).Msg("búsqueda de registros fallida")
		return ports.SearchResult{}, fmt.Errorf("buscar %s: %w", kind, err)
	}
	return res, nil
}

// ─── Navegación ─────────────────────────────────────────────────────────────

// ToggleCategory expande o colapsa una categoría.
func (w *Workspace) ToggleCategory(categoryID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nav.ToggleExpand(w.index, categoryID)
}

// SelectCategory fija el filtro ("" lo limpia).
func (w *Workspace) SelectCategory(categoryID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nav.SelectFilter(w.index, categoryID)
}

// SetQuery filtro de texto local.
func (w *Workspace) SetQuery(q string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nav.SetQuery(q)
}

func (w *Workspace) currentProducts() []entity.Product {
	if w.searchResults != nil {
		out := make([]entity.Product, len(w.searchResults))
		for i, p := range w.searchResults {
			out[i] = p.Clone()
		}
		return out
	}
	return w.index.Products()
}

func (w *Workspace) lookupProduct(id string) (entity.Product, bool) {
	if p, ok := w.index.Product(id); ok {
		return p, true
	}
	for _, p := range w.searchResults {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	return entity.Product{}, false
}

// View proyección actual.
func (w *Workspace) View() View {
	w.mu.Lock()
	defer w.mu.Unlock()

	v := View{
		State:         w.state,
		CatalogLoaded: !w.lastSync.IsZero(),
		LastSync:      w.lastSync,
		CatalogError:  w.catalogErr,
		SearchError:   w.searchErr,
		Tree:          w.nav.VisibleTree(w.index),
		ActiveFilter:  w.nav.ActiveFilter(),
		Query:         w.nav.Query(),
		RemoteSearch:  w.searchQuery,
		Products:      w.nav.Visible(w.currentProducts()),
		Cart:          w.cart.Lines(),
		CartTotal:     w.cart.Total(),
	}
	if w.quotation != nil {
		q := w.quotation.Clone()
		v.Quotation = &q
	}
	return v
}

// ─── Carrito ────────────────────────────────────────────────────────────────

// AddToCart agrega una unidad del producto. IDs desconocidos no hacen nada.
func (w *Workspace) AddToCart(productID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == StateFinalized {
		return domain.ErrQuoteFinalized
	}
	if p, ok := w.lookupProduct(productID); ok {
		w.cart.Add(p)
	}
	return nil
}

// SetQuantity fija la cantidad (mínimo 1).
func (w *Workspace) SetQuantity(productID string, quantity int) error {
	return w.mutateCart(func(c *domainquote.Cart) { c.SetQuantity(productID, quantity) })
}

// Decrement resta una unidad (mínimo 1).
func (w *Workspace) Decrement(productID string) error {
	return w.mutateCart(func(c *domainquote.Cart) { c.Decrement(productID) })
}

// RemoveFromCart elimina la línea.
func (w *Workspace) RemoveFromCart(productID string) error {
	return w.mutateCart(func(c *domainquote.Cart) { c.Remove(productID) })
}

// ClearCart vacía el carrito.
func (w *Workspace) ClearCart() error {
	return w.mutateCart(func(c *domainquote.Cart) { c.Clear() })
}

func (w *Workspace) mutateCart(fn func(*domainquote.Cart)) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == StateFinalized {
		return domain.ErrQuoteFinalized
	}
	fn(w.cart)
	return nil
}

// ─── Cotización ─────────────────────────────────────────────────────────────

// CreateQuotation emite la cotización, pasa a finalized y programa el envío al backend.
// El resultado del envío no afecta a la cotización devuelta.
func (w *Workspace) CreateQuotation(customerName, customerPhone string, applyDiscount bool) (entity.Quotation, error) {
	w.mu.Lock()
	if w.state == StateFinalized {
		w.mu.Unlock()
		return entity.Quotation{}, domain.ErrQuoteFinalized
	}
	q, err := w.generator.CreateQuotation(w.cart, customerName, customerPhone, applyDiscount)
	if err != nil {
		w.mu.Unlock()
		return entity.Quotation{}, err
	}
	stored := q.Clone()
	w.quotation = &stored
	w.state = StateFinalized
	w.mu.Unlock()

	w.log.Info().Str("code", q.Code).Int("lines", len(q.Lines)).Str("total", q.GrandTotal.StringFixed(2)).Msg("cotización emitida")
	if w.dispatcher != nil {
		w.dispatcher.Persist(w.gateway, q.Clone())
	}
	return q, nil
}

// Quotation cotización emitida (copia).
func (w *Workspace) Quotation() (entity.Quotation, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.quotation == nil {
		return entity.Quotation{}, false
	}
	return w.quotation.Clone(), true
}

// StartNewQuote descarta la cotización, vacía el carrito y vuelve a building.
func (w *Workspace) StartNewQuote() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.releaseQuotation()
	w.cart.Clear()
	w.quotation = nil
	w.state = StateBuilding
}

// Close libera lo que la sesión retiene fuera del workspace. Se llama al cerrar o expirar la sesión.
func (w *Workspace) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.releaseQuotation()
}

func (w *Workspace) releaseQuotation() {
	if w.quotation != nil && w.dispatcher != nil {
		w.dispatcher.Release(w.quotation.Code)
	}
}

// SyncStatus estado del envío de la cotización emitida.
func (w *Workspace) SyncStatus() (entity.SyncStatus, bool) {
	q, ok := w.Quotation()
	if !ok || w.dispatcher == nil {
		return entity.SyncStatus{}, false
	}
	return w.dispatcher.Status(q.Code)
}

// RenderPDF documento imprimible de la cotización emitida.
func (w *Workspace) RenderPDF() (entity.Quotation, []byte, error) {
	q, ok := w.Quotation()
	if !ok {
		return entity.Quotation{}, nil, fmt.Errorf("no hay cotización emitida: %w", domain.ErrNotFound)
	}
	pdf, err := w.generator.Render(q)
	if err != nil {
		return entity.Quotation{}, nil, err
	}
	return q, pdf, nil
}
