// Package pdf genera el informe de inventario de productos.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título                    │  Fecha de generación   │
//	│  Filtros aplicados (búsqueda, stock)                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: productos | stock bajo | agotados | unidades | $  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Nombre | Descripción | Precio compra | Stock | Est.  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de filas                                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	"github.com/gosimple/slug"
	maroto "github.com/johnfercher/maroto/v2"
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
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/stockpro/internal/application/ports"
	"github.com/jhoicas/stockpro/internal/domain/entity"
	"github.com/jhoicas/stockpro/internal/domain/inventory"
)

var _ ports.ProductReportGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDanger  = &props.Color{Red: 180, Green: 30, Blue: 30}
	colorWarning = &props.Color{Red: 200, Green: 120, Blue: 0}
)

var stockLabels = map[inventory.StockFilter]string{
	inventory.FilterInStock:    "En stock",
	inventory.FilterLowStock:   "Stock bajo",
	inventory.FilterOutOfStock: "Agotado",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa ports.ProductReportGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	printer *message.Printer
}

// NewMarotoReportGenerator construye el generador. Los importes se formatean según lang.
func NewMarotoReportGenerator(lang language.Tag) *MarotoReportGenerator {
	return &MarotoReportGenerator{printer: message.NewPrinter(lang)}
}

// FileName nombre de descarga: productos-<filtros>-<fecha>.pdf.
func (g *MarotoReportGenerator) FileName(r ports.ProductReport) string {
	parts := "productos"
	if r.Search != "" {
		parts += " " + r.Search
	}
	if r.Filter != "" {
		parts += " " + r.Filter
	}
	return slug.Make(parts+" "+r.GeneratedAt.Format("2006-01-02")) + ".pdf"
}

// GenerateProductsReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateProductsReport(ctx context.Context, r ports.ProductReport) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(r.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.statsRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, p := range r.Products {
		m.AddRows(g.productRow(p))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(6).Add(col.New(12).Add(
		text.New(g.printer.Sprintf("%d productos", len(r.Products)), props.Text{
			Size: 8, Align: align.Right, Color: colorGray, Top: 1,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título y filtros (izq), fecha (der).
func (g *MarotoReportGenerator) headerRow(r ports.ProductReport) core.Row {
	filters := "Filtros: ninguno"
	if r.Search != "" || r.Filter != "" {
		filters = fmt.Sprintf("Búsqueda: %s   |   Stock: %s",
			nonEmpty(r.Search, "-"),
			nonEmpty(stockLabels[inventory.StockFilter(r.Filter)], "todos"),
		)
	}
	return row.New(16).Add(
		col.New(8).Add(
			text.New(r.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(filters, props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Generado: "+r.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// statsRow: cinco indicadores del catálogo.
func (g *MarotoReportGenerator) statsRow(r ports.ProductReport) core.Row {
	stat := func(label, value string) core.Col {
		return col.New(2).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Align: align.Center, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Center, Top: 6}),
		)
	}
	return row.New(16).Add(
		stat("Productos", g.printer.Sprintf("%d", r.Stats.TotalProducts)),
		stat("Stock bajo", g.printer.Sprintf("%d", r.Stats.LowStock)),
		stat("Agotados", g.printer.Sprintf("%d", r.Stats.OutOfStock)),
		stat("Unidades", g.printer.Sprintf("%d", r.Stats.TotalUnits)),
		col.New(4).Add(
			text.New("Valor (precio de compra)", props.Text{Size: 7, Color: colorGray, Align: align.Center, Top: 1}),
			text.New(g.money(r.Stats.TotalStockValue), props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Center, Top: 6}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Nombre", 3, align.Left),
		h("Descripción", 4, align.Left),
		h("Precio compra", 2, align.Right),
		h("Stock", 1, align.Center),
		h("Estado", 2, align.Center),
	)
}

func (g *MarotoReportGenerator) productRow(p *entity.Product) core.Row {
	status := inventory.Classify(p.StockQty)
	statusColor := colorGray
	switch status {
	case inventory.FilterLowStock:
		statusColor = colorWarning
	case inventory.FilterOutOfStock:
		statusColor = colorDanger
	}
	return row.New(7).Add(
		col.New(3).Add(text.New(p.Name, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(4).Add(text.New(nonEmpty(p.DescriptionOrEmpty(), "-"), props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
		col.New(2).Add(text.New(g.money(p.BuyPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(1).Add(text.New(g.printer.Sprintf("%d", p.StockQty), props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(2).Add(text.New(stockLabels[status], props.Text{Size: 8, Align: align.Center, Top: 1, Color: statusColor})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// money formatea con separadores del idioma del generador y dos decimales.
func (g *MarotoReportGenerator) money(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return g.printer.Sprintf("$%.2f", f)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
