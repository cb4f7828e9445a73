package quote_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ascari-panel/internal/application/ports"
	appquote "github.com/jhoicas/ascari-panel/internal/application/quote"
	"github.com/jhoicas/ascari-panel/internal/domain"
	"github.com/jhoicas/ascari-panel/internal/domain/entity"
)

func loadedWorkspace(t *testing.T, gw *mockGateway) (*appquote.Workspace, *appquote.Dispatcher) {
	t.Helper()
	gw.On("FetchCatalog", mock.Anything).Return(sampleCatalog(), nil).Once()
	ws, disp, _ := newWorkspace(gw)
	require.NoError(t, ws.RefreshCatalog(context.Background()))
	return ws, disp
}

func productIDs(ps []entity.Product) []string {
	out := []string{}
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

// ─── Ciclo emitir / nueva cotización ───

func TestWorkspace_CicloEmitirYReiniciar(t *testing.T) {
	gw := &mockGateway{}
	gw.On("SubmitQuotation", mock.Anything, mock.Anything).Return(ports.SubmitResult{Success: true, RemoteID: "17"}, nil)
	ws, disp := loadedWorkspace(t, gw)

	require.NoError(t, ws.AddToCart("p1"))
	require.NoError(t, ws.AddToCart("p1"))
	require.NoError(t, ws.AddToCart("p2"))

	q, err := ws.CreateQuotation("Ali Veli", "", false)
	require.NoError(t, err)
	require.Len(t, q.Lines, 2)

	assert.ErrorIs(t, ws.AddToCart("p3"), domain.ErrQuoteFinalized)
	assert.ErrorIs(t, ws.SetQuantity("p1", 5), domain.ErrQuoteFinalized)
	assert.ErrorIs(t, ws.RemoveFromCart("p1"), domain.ErrQuoteFinalized)
	_, err = ws.CreateQuotation("otra", "", false)
	assert.ErrorIs(t, err, domain.ErrQuoteFinalized)

	stored, ok := ws.Quotation()
	require.True(t, ok)
	assert.Equal(t, q.Lines, stored.Lines)
	assert.Equal(t, appquote.StateFinalized, ws.View().State)

	ws.StartNewQuote()
	v := ws.View()
	assert.Equal(t, appquote.StateBuilding, v.State)
	assert.Empty(t, v.Cart)
	assert.Nil(t, v.Quotation)

	require.NoError(t, ws.AddToCart("p3"))
	q2, err := ws.CreateQuotation("", "", false)
	require.NoError(t, err)
	require.Len(t, q2.Lines, 1)
	assert.Equal(t, "p3", q2.Lines[0].Product.ID)
	assert.NotEqual(t, q.Code, q2.Code)

	disp.Wait()
	gw.AssertNumberOfCalls(t, "SubmitQuotation", 2)
	assert.Equal(t, 1, disp.Len(), "solo queda el estado de la cotización vigente")
	_, ok = disp.Status(q.Code)
	assert.False(t, ok)

	ws.Close()
	assert.Equal(t, 0, disp.Len())
}

func TestWorkspace_EnvioFallidoNoAfectaLaCotizacion(t *testing.T) {
	gw := &mockGateway{}
	gw.On("SubmitQuotation", mock.Anything, mock.Anything).Return(ports.SubmitResult{}, errBackend)
	ws, disp := loadedWorkspace(t, gw)

	require.NoError(t, ws.AddToCart("p1"))
	q, err := ws.CreateQuotation("Ayşe", "", true)
	require.NoError(t, err)
	disp.Wait()

	status, ok := ws.SyncStatus()
	require.True(t, ok)
	assert.Equal(t, entity.SyncFailed, status.State)
	assert.Contains(t, status.Error, "connection refused")

	after, ok := ws.Quotation()
	require.True(t, ok)
	assert.Equal(t, q, after)

	_, pdf, err := ws.RenderPDF()
	require.NoError(t, err)
	assert.Equal(t, "%PDF-"+q.Code, string(pdf))
}

func TestWorkspace_RenderSinCotizacion(t *testing.T) {
	ws, _ := loadedWorkspace(t, &mockGateway{})
	_, _, err := ws.RenderPDF()
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ─── Carrito y navegación ───

func TestWorkspace_IDsDesconocidosSonNoOp(t *testing.T) {
	ws, _ := loadedWorkspace(t, &mockGateway{})

	require.NoError(t, ws.AddToCart("no-existe"))
	require.NoError(t, ws.SetQuantity("no-existe", 3))
	ws.ToggleCategory("no-existe")
	ws.SelectCategory("no-existe")

	v := ws.View()
	assert.Empty(t, v.Cart)
	assert.Equal(t, "", v.ActiveFilter)
	assert.Len(t, v.Products, 3)
}

func TestWorkspace_FiltroYCarrito(t *testing.T) {
	ws, _ := loadedWorkspace(t, &mockGateway{})

	ws.SelectCategory("A")
	assert.Equal(t, []string{"p1"}, productIDs(ws.View().Products))

	require.NoError(t, ws.AddToCart("p1"))
	require.NoError(t, ws.SetQuantity("p1", 0))
	require.NoError(t, ws.AddToCart("p2"))
	require.NoError(t, ws.Decrement("p2"))

	v := ws.View()
	require.Len(t, v.Cart, 2)
	assert.Equal(t, 1, v.Cart[0].Quantity)
	assert.Equal(t, 1, v.Cart[1].Quantity)
	assert.True(t, v.CartTotal.Equal(decimal.NewFromInt(350)))

	require.NoError(t, ws.ClearCart())
	assert.Empty(t, ws.View().Cart)
}

// ─── Resultados superados y fallas del gateway ───

func TestWorkspace_RefrescoFallidoConservaCatalogo(t *testing.T) {
	gw := &mockGateway{}
	ws, _ := loadedWorkspace(t, gw)
	gw.On("FetchCatalog", mock.Anything).Return(ports.Catalog{}, errBackend).Once()

	err := ws.RefreshCatalog(context.Background())
	assert.ErrorIs(t, err, errBackend)

	v := ws.View()
	assert.True(t, v.CatalogError)
	assert.Len(t, v.Products, 3)
}

func TestWorkspace_RefrescoSuperadoSeDescarta(t *testing.T) {
	gw := &mockGateway{}
	ws, _ := loadedWorkspace(t, gw)

	started := make(chan struct{})
	release := make(chan struct{})
	stale := ports.Catalog{Products: []entity.Product{{ID: "viejo", Name: "Eski"}}}
	fresh := ports.Catalog{Products: []entity.Product{{ID: "nuevo", Name: "Yeni"}}}

	gw.On("FetchCatalog", mock.Anything).Return(stale, nil).Once().Run(func(mock.Arguments) {
		close(started)
		<-release
	})
	gw.On("FetchCatalog", mock.Anything).Return(fresh, nil).Once()

	done := make(chan error)
	go func() { done <- ws.RefreshCatalog(context.Background()) }()
	<-started

	require.NoError(t, ws.RefreshCatalog(context.Background()))
	close(release)
	require.NoError(t, <-done)

	assert.Equal(t, []string{"nuevo"}, productIDs(ws.View().Products))
}

func TestWorkspace_BusquedaSuperadaSeDescarta(t *testing.T) {
	gw := &mockGateway{}
	ws, _ := loadedWorkspace(t, gw)

	started := make(chan struct{})
	release := make(chan struct{})
	gw.On("Search", mock.Anything, ports.KindProduct, "kol").
		Return(ports.SearchResult{Products: []entity.Product{{ID: "k1", Name: "Koltuk"}}}, nil).
		Once().
		Run(func(mock.Arguments) {
			close(started)
			<-release
		})
	gw.On("Search", mock.Anything, ports.KindProduct, "baza").
		Return(ports.SearchResult{Products: []entity.Product{{ID: "p2", Name: "Baza", CategoryID: "B"}}}, nil).
		Once()

	done := make(chan error)
	go func() { done <- ws.SearchProducts(context.Background(), "kol") }()
	<-started

	require.NoError(t, ws.SearchProducts(context.Background(), "baza"))
	close(release)
	require.NoError(t, <-done)

	v := ws.View()
	assert.Equal(t, "baza", v.RemoteSearch)
	require.Equal(t, []string{"p2"}, productIDs(v.Products))
	assert.Equal(t, []string{"root", "B"}, v.Products[0].CategoryPath)

	ws.ClearSearch()
	assert.Len(t, ws.View().Products, 3)
}

func TestWorkspace_BusquedaFallidaConservaLista(t *testing.T) {
	gw := &mockGateway{}
	ws, _ := loadedWorkspace(t, gw)
	gw.On("Search", mock.Anything, ports.KindProduct, "x").Return(ports.SearchResult{}, errBackend)

	assert.Error(t, ws.SearchProducts(context.Background(), "x"))
	v := ws.View()
	assert.Len(t, v.Products, 3)
	assert.True(t, v.SearchError)

	ws.ClearSearch()
	assert.False(t, ws.View().SearchError)
}

func TestWorkspace_SearchRecordsDelegaEnElGateway(t *testing.T) {
	gw := &mockGateway{}
	ws, _ := loadedWorkspace(t, gw)
	want := ports.SearchResult{Kind: ports.KindCustomer, Records: []ports.Record{{ID: "7", Title: "Ali"}}}
	gw.On("Search", mock.Anything, ports.KindCustomer, "ali").Return(want, nil)

	got, err := ws.SearchRecords(context.Background(), ports.KindCustomer, "ali")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
