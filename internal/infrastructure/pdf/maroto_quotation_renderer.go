// Package pdf genera la representación imprimible de una cotización (teklif).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + lema        │  TEKLIF + código + fecha    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + teléfono                                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Ürün | Kod | Adet | Birim Fiyat | Tutar              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES según el modo de precios                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR de verificación + código                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ascari-panel/internal/application/ports"
	"github.com/jhoicas/ascari-panel/internal/domain/entity"
	"github.com/jhoicas/ascari-panel/pkg/phone"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 33, Green: 33, Blue: 33}
	colorAccent  = &props.Color{Red: 176, Green: 141, Blue: 87}
	colorGray    = &props.Color{Red: 110, Green: 110, Blue: 110}
)

// ── Renderer ──────────────────────────────────────────────────────────────────

var _ ports.QuotationRenderer = (*MarotoQuotationRenderer)(nil)

// Company datos de cabecera.
type Company struct {
	Name    string
	Tagline string
}

// MarotoQuotationRenderer implementa ports.QuotationRenderer usando Maroto v2.
type MarotoQuotationRenderer struct {
	company Company
}

// NewMarotoQuotationRenderer construye el generador.
func NewMarotoQuotationRenderer(company Company) *MarotoQuotationRenderer {
	return &MarotoQuotationRenderer{company: company}
}

// RenderQuotation genera el PDF y devuelve sus bytes.
func (g *MarotoQuotationRenderer) RenderQuotation(q entity.Quotation) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(tr("Teklif "+q.Code), true).
		WithAuthor(tr(g.company.Name), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(q))
	m.AddRows(line.NewRow(1, props.Line{Color: colorAccent, Thickness: 0.6}))
	m.AddRows(customerRow(q))
	m.AddRows(line.NewRow(1, props.Line{Color: colorAccent, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableLineRows(q.Lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorAccent, Thickness: 0.3}))
	m.AddRows(totalsRows(q)...)

	m.AddRows(line.NewRow(4))
	m.AddRows(verificationRow(q))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoQuotationRenderer) headerRow(q entity.Quotation) core.Row {
	return row.New(20).Add(
		col.New(7).Add(
			text.New(tr(g.company.Name), props.Text{
				Style: fontstyle.Bold, Size: 18, Color: colorPrimary, Top: 1,
			}),
			text.New(tr(g.company.Tagline), props.Text{
				Size: 9, Top: 11, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(tr("FİYAT TEKLİFİ"), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorAccent, Top: 1,
			}),
			text.New(q.Code, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Tarih: "+q.IssuedAt.Format("02.01.2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func customerRow(q entity.Quotation) core.Row {
	contact := "Telefon: " + nonEmpty(phone.Display(q.CustomerPhone), "-")
	return row.New(14).Add(
		col.New(12).Add(
			text.New(tr("MÜŞTERİ"), props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorAccent, Top: 1,
			}),
			text.New(tr(q.CustomerName), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 5,
			}),
			text.New(contact, props.Text{Size: 8, Top: 10, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(tr(label), props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Ürün", 4, align.Left),
		h("Kod", 2, align.Left),
		h("Adet", 1, align.Center),
		h("Birim Fiyat", 2, align.Right),
		h("Tutar", 3, align.Right),
	)
}

func tableLineRows(lines []entity.CartLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		name := tr(l.Product.Name)
		if d := l.Product.Dimensions; d != nil {
			name += fmt.Sprintf(" (%sx%sx%s cm)", d.Width.String(), d.Depth.String(), d.Height.String())
		}
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(tr(nonEmpty(l.Product.Code, "-")), props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", l.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(formatMoney(l.Product.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(formatMoney(l.LineTotal()), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// totalsRows el bloque depende del modo: cuotas (con o sin descuento de contado) o impuesto plano.
func totalsRows(q entity.Quotation) []core.Row {
	type entry struct {
		label string
		value string
		grand bool
	}
	var entries []entry
	switch q.PricingMode {
	case entity.PricingModeTax:
		entries = []entry{
			{"Ara Toplam", formatMoney(q.ListTotal), false},
			{"KDV %" + q.TaxRate.Mul(decimal.NewFromInt(100)).StringFixed(0), formatMoney(q.TaxAmount), false},
			{"GENEL TOPLAM", formatMoney(q.GrandTotal), true},
		}
	default:
		if q.DiscountApplied {
			entries = []entry{
				{"Liste Toplamı (Taksitli)", formatMoney(q.ListTotal), false},
				{"Peşin İndirimi", "-" + formatMoney(q.ListTotal.Sub(q.DiscountedTotal)), false},
				{"PEŞİN TOPLAM", formatMoney(q.DiscountedTotal), true},
			}
		} else {
			entries = []entry{
				{"TOPLAM (Taksitli)", formatMoney(q.ListTotal), true},
			}
		}
	}

	rows := make([]core.Row, 0, len(entries))
	for _, e := range entries {
		size := 9.0
		style := fontstyle.Normal
		color := colorPrimary
		if e.grand {
			size, style, color = 11, fontstyle.Bold, colorAccent
		}
		rows = append(rows, row.New(7).Add(
			col.New(5),
			col.New(4).Add(text.New(tr(e.label)+":", props.Text{Style: fontstyle.Bold, Size: size, Align: align.Right, Right: 2, Top: 1, Color: color})),
			col.New(3).Add(text.New(e.value, props.Text{Style: style, Size: size, Align: align.Right, Right: 1, Top: 1, Color: color})),
		))
	}
	return rows
}

func verificationRow(q entity.Quotation) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(q.VerificationURL, props.Rect{
			Percent: 95,
			Center:  true,
		})),
		col.New(9).Add(
			text.New(tr("Teklifi doğrulamak için QR kodu okutun."), props.Text{
				Size: 8, Top: 6, Left: 3, Color: colorGray,
			}),
			text.New(q.VerificationURL, props.Text{
				Size: 8, Top: 12, Left: 3, Color: colorGray,
			}),
			text.New(tr("Bu teklif bilgilendirme amaçlıdır; stok durumu sipariş anında teyit edilir."), props.Text{
				Size: 7, Top: 24, Left: 3, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// turkishToLatin1 letras turcas fuera de cp1252 (fuentes estándar del PDF).
var turkishToLatin1 = strings.NewReplacer(
	"İ", "I", "ı", "i",
	"Ş", "S", "ş", "s",
	"Ğ", "G", "ğ", "g",
)

func tr(s string) string { return turkishToLatin1.Replace(s) }

// formatMoney formato turco: punto de miles, coma decimal, sufijo TL.
// Ej: 12500.5 → "12.500,50 TL"
func formatMoney(d decimal.Decimal) string {
	fixed := d.StringFixed(2)
	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")
	intPart, frac, _ := strings.Cut(fixed, ".")

	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	out := string(buf) + "," + frac + " TL"
	if neg {
		return "-" + out
	}
	return out
}
