package odoo

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ascari-panel/internal/application/ports"
	"github.com/jhoicas/ascari-panel/internal/domain"
	"github.com/jhoicas/ascari-panel/internal/domain/entity"
)

const publicCategoryModel = "product.public.category"

var _ ports.SessionGateway = (*Gateway)(nil)

// Gateway sesión autenticada contra Odoo. Valida y completa los registros sueltos del backend
// para que el núcleo solo reciba entidades bien formadas.
type Gateway struct {
	client   *client
	cfg      Config
	db       string
	uid      int
	password string
	log      zerolog.Logger
}

// executeKw llama a un método de modelo (search_read, create, ...).
func (g *Gateway) executeKw(ctx context.Context, model, method string, args []any, kwargs map[string]any) (any, error) {
	if kwargs == nil {
		kwargs = map[string]any{}
	}
	res, err := g.client.call(ctx, objectPath, "execute_kw", g.db, g.uid, g.password, model, method, args, kwargs)
	if err != nil {
		return nil, fmt.Errorf("%s.%s: %w", model, method, err)
	}
	return res, nil
}

func (g *Gateway) searchRead(ctx context.Context, model string, domainExpr []any, fields []string, limit int, order string) ([]map[string]any, error) {
	kwargs := map[string]any{"fields": fields}
	if limit > 0 {
		kwargs["limit"] = limit
	}
	if order != "" {
		kwargs["order"] = order
	}
	res, err := g.executeKw(ctx, model, "search_read", []any{domainExpr}, kwargs)
	if err != nil {
		return nil, err
	}
	return asRecords(res), nil
}

// ── Catálogo ──────────────────────────────────────────────────────────────────

// FetchCatalog lee categorías y productos vendibles.
func (g *Gateway) FetchCatalog(ctx context.Context) (ports.Catalog, error) {
	rawCats, err := g.searchRead(ctx, g.cfg.CategoryModel, []any{}, []string{"id", "name", "parent_id"}, 0, "id")
	if err != nil {
		return ports.Catalog{}, err
	}
	categories := make([]entity.Category, 0, len(rawCats))
	for _, r := range rawCats {
		id := asString(r["id"])
		if id == "" {
			continue
		}
		parentID, _ := many2one(r["parent_id"])
		categories = append(categories, entity.Category{ID: id, Name: defaultName(asString(r["name"]), id), ParentID: parentID})
	}

	domainExpr := []any{[]any{"sale_ok", "=", true}}
	rawProducts, err := g.searchRead(ctx, "product.product", domainExpr, g.productFields(), g.cfg.ProductLimit, "name")
	if err != nil {
		return ports.Catalog{}, err
	}
	g.log.Debug().Int("categories", len(categories)).Int("products", len(rawProducts)).Msg("catálogo leído")
	return ports.Catalog{Categories: categories, Products: g.toProducts(rawProducts)}, nil
}

func (g *Gateway) categoryField() string {
	if g.cfg.CategoryModel == publicCategoryModel {
		return "public_categ_ids"
	}
	return "categ_id"
}

func (g *Gateway) productFields() []string {
	fields := []string{"id", "name", "default_code", "lst_price", "qty_available", "image_128", g.categoryField()}
	return append(fields, g.cfg.DimensionFields...)
}

func (g *Gateway) toProducts(raw []map[string]any) []entity.Product {
	out := make([]entity.Product, 0, len(raw))
	for _, r := range raw {
		id := asString(r["id"])
		if id == "" {
			continue
		}
		price := asDecimal(r["lst_price"])
		if price.IsNegative() {
			price = decimal.Zero
		}
		stock := asInt(r["qty_available"])
		if stock < 0 {
			stock = 0
		}
		var categoryID string
		if g.cfg.CategoryModel == publicCategoryModel {
			categoryID = firstID(r["public_categ_ids"])
		} else {
			categoryID, _ = many2one(r["categ_id"])
		}
		out = append(out, entity.Product{
			ID:         id,
			Name:       defaultName(asString(r["name"]), id),
			Code:       asString(r["default_code"]),
			UnitPrice:  price,
			StockQty:   stock,
			CategoryID: categoryID,
			Thumbnail:  asString(r["image_128"]),
			Dimensions: g.dimensions(r),
		})
	}
	return out
}

func (g *Gateway) dimensions(r map[string]any) *entity.Dimensions {
	if len(g.cfg.DimensionFields) < 3 {
		return nil
	}
	d := entity.Dimensions{
		Width:  asDecimal(r[g.cfg.DimensionFields[0]]),
		Depth:  asDecimal(r[g.cfg.DimensionFields[1]]),
		Height: asDecimal(r[g.cfg.DimensionFields[2]]),
	}
	if d.Width.IsZero() && d.Depth.IsZero() && d.Height.IsZero() {
		return nil
	}
	return &d
}

func defaultName(name, id string) string {
	if name == "" {
		return "#" + id
	}
	return name
}

// ── Búsqueda ──────────────────────────────────────────────────────────────────

type searchDef struct {
	model  string
	base   []any    // filtro fijo
	text   []string // campos donde se busca el texto (OR)
	fields []string
	order  string
}

var searchDefs = map[ports.EntityKind]searchDef{
	ports.KindCustomer: {
		model:  "res.partner",
		base:   []any{[]any{"customer_rank", ">", 0}},
		text:   []string{"name", "email", "phone"},
		fields: []string{"id", "name", "email", "phone", "street", "total_due"},
		order:  "name",
	},
	ports.KindOrder: {
		model:  "sale.order",
		text:   []string{"name", "partner_id", "client_order_ref"},
		fields: []string{"id", "name", "partner_id", "date_order", "amount_total", "state", "client_order_ref"},
		order:  "id desc",
	},
	ports.KindInvoice: {
		model:  "account.move",
		base:   []any{[]any{"move_type", "=", "out_invoice"}},
		text:   []string{"name", "partner_id"},
		fields: []string{"id", "name", "partner_id", "invoice_date", "amount_total", "payment_state"},
		order:  "id desc",
	},
	ports.KindTicket: {
		model:  "helpdesk.ticket",
		text:   []string{"name", "partner_id"},
		fields: []string{"id", "name", "partner_id", "stage_id", "create_date"},
		order:  "id desc",
	},
}

// textDomain arma ['|', '|', [f1 ilike q], [f2 ilike q], [f3 ilike q]] en notación prefija.
func textDomain(fields []string, query string) []any {
	var out []any
	for i := 1; i < len(fields); i++ {
		out = append(out, "|")
	}
	for _, f := range fields {
		out = append(out, []any{f, "ilike", query})
	}
	return out
}

// Search busca registros por texto. Consulta vacía lista los más recientes.
func (g *Gateway) Search(ctx context.Context, kind ports.EntityKind, query string) (ports.SearchResult, error) {
	query = strings.TrimSpace(query)
	if kind == ports.KindProduct {
		domainExpr := []any{[]any{"sale_ok", "=", true}}
		if query != "" {
			domainExpr = append(domainExpr, textDomain([]string{"name", "default_code"}, query)...)
		}
		raw, err := g.searchRead(ctx, "product.product", domainExpr, g.productFields(), g.cfg.SearchLimit, "name")
		if err != nil {
			return ports.SearchResult{}, err
		}
		return ports.SearchResult{Kind: kind, Products: g.toProducts(raw)}, nil
	}

	def, ok := searchDefs[kind]
	if !ok {
		return ports.SearchResult{}, fmt.Errorf("%w: tipo de búsqueda %q", domain.ErrInvalidInput, kind)
	}
	domainExpr := append([]any{}, def.base...)
	if query != "" {
		domainExpr = append(domainExpr, textDomain(def.text, query)...)
	}
	raw, err := g.searchRead(ctx, def.model, domainExpr, def.fields, g.cfg.SearchLimit, def.order)
	if err != nil {
		return ports.SearchResult{}, err
	}
	records := make([]ports.Record, 0, len(raw))
	for _, r := range raw {
		records = append(records, toRecord(kind, r))
	}
	return ports.SearchResult{Kind: kind, Records: records}, nil
}

func toRecord(kind ports.EntityKind, r map[string]any) ports.Record {
	rec := ports.Record{ID: asString(r["id"]), Kind: kind, Title: asString(r["name"])}
	_, rec.Partner = many2one(r["partner_id"])
	switch kind {
	case ports.KindCustomer:
		rec.Partner = rec.Title
		rec.Email = asString(r["email"])
		rec.Phone = asString(r["phone"])
		rec.Address = asString(r["street"])
		rec.Amount = asDecimal(r["total_due"])
	case ports.KindOrder:
		rec.Amount = asDecimal(r["amount_total"])
		rec.State = asString(r["state"])
		rec.Date = asTime(r["date_order"])
		rec.Reference = asString(r["client_order_ref"])
	case ports.KindInvoice:
		rec.Amount = asDecimal(r["amount_total"])
		rec.State = asString(r["payment_state"])
		rec.Date = asTime(r["invoice_date"])
	case ports.KindTicket:
		_, rec.State = many2one(r["stage_id"])
		rec.Date = asTime(r["create_date"])
	}
	return rec
}

// ── Registro de cotizaciones ──────────────────────────────────────────────────

// SubmitQuotation crea (o reutiliza) el cliente y registra un presupuesto sale.order con
// el código de la cotización como referencia del cliente.
func (g *Gateway) SubmitQuotation(ctx context.Context, p ports.QuotationPayload) (ports.SubmitResult, error) {
	if len(p.Lines) == 0 {
		return ports.SubmitResult{}, domain.ErrEmptyCart
	}
	for _, l := range p.Lines {
		if l.Quantity < 1 {
			return ports.SubmitResult{}, fmt.Errorf("%w: cantidad %d en %q", domain.ErrInvalidInput, l.Quantity, l.ProductID)
		}
	}
	partnerID, err := g.ensurePartner(ctx, p.CustomerName, p.CustomerPhone)
	if err != nil {
		return ports.SubmitResult{}, err
	}

	lines := make([]any, 0, len(p.Lines))
	prices := netUnitPrices(p)
	for i, l := range p.Lines {
		productID, err := strconv.Atoi(l.ProductID)
		if err != nil {
			return ports.SubmitResult{}, fmt.Errorf("%w: producto %q no pertenece al backend", domain.ErrInvalidInput, l.ProductID)
		}
		lines = append(lines, []any{0, 0, map[string]any{
			"product_id":      productID,
			"name":            lineName(l),
			"product_uom_qty": l.Quantity,
			"price_unit":      prices[i],
		}})
	}

	res, err := g.executeKw(ctx, "sale.order", "create", []any{map[string]any{
		"partner_id":       partnerID,
		"client_order_ref": p.Code,
		"order_line":       lines,
	}}, nil)
	if err != nil {
		return ports.SubmitResult{}, err
	}
	id, ok := res.(int)
	if !ok {
		return ports.SubmitResult{Success: false}, nil
	}
	return ports.SubmitResult{Success: true, RemoteID: strconv.Itoa(id)}, nil
}

// netUnitPrices precio unitario a enviar por línea. Con el descuento de contado se reparte
// GrandTotal en proporción al importe de lista: cada línea se redondea a céntimos y la última
// absorbe el resto, de modo que la suma de líneas en Odoo coincide con el total impreso.
func netUnitPrices(p ports.QuotationPayload) []decimal.Decimal {
	out := make([]decimal.Decimal, len(p.Lines))
	if !p.DiscountApplied || !p.ListTotal.IsPositive() {
		for i, l := range p.Lines {
			out[i] = l.UnitPrice
		}
		return out
	}
	ratio := p.GrandTotal.Div(p.ListTotal)
	remaining := p.GrandTotal
	for i, l := range p.Lines {
		qty := decimal.NewFromInt(int64(l.Quantity))
		lineTotal := remaining
		if i < len(p.Lines)-1 {
			lineTotal = l.UnitPrice.Mul(qty).Mul(ratio).Round(2)
			remaining = remaining.Sub(lineTotal)
		}
		out[i] = lineTotal.Div(qty).Round(6)
	}
	return out
}

func lineName(l ports.QuotationLinePayload) string {
	if l.Code == "" {
		return l.Name
	}
	return "[" + l.Code + "] " + l.Name
}

// ensurePartner busca el cliente por teléfono (o por nombre si no hay teléfono) y lo crea si no existe.
func (g *Gateway) ensurePartner(ctx context.Context, name, phone string) (int, error) {
	lookup := []any{[]any{"name", "=", name}}
	if phone != "" {
		lookup = []any{[]any{"phone", "=", phone}}
	}
	found, err := g.searchRead(ctx, "res.partner", lookup, []string{"id"}, 1, "")
	if err != nil {
		return 0, err
	}
	if len(found) > 0 {
		if id := asInt(found[0]["id"]); id > 0 {
			return id, nil
		}
	}
	vals := map[string]any{"name": name, "customer_rank": 1}
	if phone != "" {
		vals["phone"] = phone
	}
	res, err := g.executeKw(ctx, "res.partner", "create", []any{vals}, nil)
	if err != nil {
		return 0, err
	}
	id, ok := res.(int)
	if !ok {
		return 0, fmt.Errorf("res.partner.create: respuesta inesperada %T", res)
	}
	return id, nil
}
