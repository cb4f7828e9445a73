package quote_test

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/ascari-panel/internal/application/ports"
	appquote "github.com/jhoicas/ascari-panel/internal/application/quote"
	"github.com/jhoicas/ascari-panel/internal/domain/entity"
	domainquote "github.com/jhoicas/ascari-panel/internal/domain/quote"
	"github.com/jhoicas/ascari-panel/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de test
// ──────────────────────────────────────────────────────────────────────────────

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) FetchCatalog(ctx context.Context) (ports.Catalog, error) {
	args := m.Called(ctx)
	return args.Get(0).(ports.Catalog), args.Error(1)
}

func (m *mockGateway) Search(ctx context.Context, kind ports.EntityKind, query string) (ports.SearchResult, error) {
	args := m.Called(ctx, kind, query)
	return args.Get(0).(ports.SearchResult), args.Error(1)
}

func (m *mockGateway) SubmitQuotation(ctx context.Context, payload ports.QuotationPayload) (ports.SubmitResult, error) {
	args := m.Called(ctx, payload)
	return args.Get(0).(ports.SubmitResult), args.Error(1)
}

type stubRenderer struct{ calls int }

func (r *stubRenderer) RenderQuotation(q entity.Quotation) ([]byte, error) {
	r.calls++
	return []byte("%PDF-" + q.Code), nil
}

var errBackend = errors.New("connection refused")

func sampleCatalog() ports.Catalog {
	return ports.Catalog{
		Categories: []entity.Category{
			{ID: "root", Name: "Tümü"},
			{ID: "A", Name: "Oturma", ParentID: "root"},
			{ID: "A1", Name: "Koltuk", ParentID: "A"},
			{ID: "B", Name: "Yatak", ParentID: "root"},
		},
		Products: []entity.Product{
			{ID: "p1", Name: "Chester", Code: "CH", UnitPrice: decimal.NewFromInt(100), CategoryID: "A1"},
			{ID: "p2", Name: "Baza", Code: "BZ", UnitPrice: decimal.NewFromInt(250), CategoryID: "B"},
			{ID: "p3", Name: "Kart", Code: "GC", UnitPrice: decimal.Zero},
		},
	}
}

func newGenerator(r *stubRenderer) *appquote.Generator {
	return appquote.NewGenerator(appquote.GeneratorConfig{
		DefaultCustomer: "Müşteri",
		VerifyBaseURL:   "https://ascari.com.tr/t/",
		Policy:          domainquote.DefaultPricingPolicy(),
	}, domainquote.NewCodeGenerator("ASC"), r)
}

// newWorkspace workspace con catálogo cargado.
func newWorkspace(gw *mockGateway) (*appquote.Workspace, *appquote.Dispatcher, *stubRenderer) {
	r := &stubRenderer{}
	log := logger.Nop().Zerolog()
	disp := appquote.NewDispatcher(2, 0, log)
	return appquote.NewWorkspace(gw, newGenerator(r), disp, log), disp, r
}
