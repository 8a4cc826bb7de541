// Package pdf genera el reporte de ventas en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Reporte de ventas   │  Período + filtros           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Total vendido / N° pedidos / Canal / Categoría     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA DIARIA: Fecha | Pedidos | Total                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RANKING: # | Producto | Cantidad | Ingresos                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"

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

	"github.com/jhoicas/pedidos-api/internal/application/analytics"
	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/pkg/money"
)

var _ analytics.ReportRenderer = (*ReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorStripe  = &props.Color{Red: 235, Green: 240, Blue: 245}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// ReportGenerator implementa analytics.ReportRenderer usando Maroto v2.
type ReportGenerator struct {
	author string
}

// NewReportGenerator construye el generador; author queda en los metadatos del PDF.
func NewReportGenerator(author string) *ReportGenerator {
	return &ReportGenerator{author: author}
}

func (g *ReportGenerator) ContentType() string { return "application/pdf" }
func (g *ReportGenerator) Extension() string   { return "pdf" }

// Render genera el PDF y devuelve sus bytes.
func (g *ReportGenerator) Render(report *dto.SalesReportDTO) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("pdf: reporte nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de ventas", true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("VENTAS POR DÍA"))
	m.AddRows(dailyHeaderRow())
	if len(report.DailyBuckets) == 0 {
		m.AddRows(emptyRow("Sin pedidos entregados en el período."))
	}
	m.AddRows(dailyRows(report.DailyBuckets)...)

	m.AddRows(line.NewRow(4))
	m.AddRows(sectionTitle("PRODUCTOS MÁS VENDIDOS"))
	m.AddRows(rankingHeaderRow())
	if len(report.Rankings) == 0 {
		m.AddRows(emptyRow("Sin productos vendidos en el período."))
	}
	m.AddRows(rankingRows(report.Rankings)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(r *dto.SalesReportDTO) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("REPORTE DE VENTAS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Pedidos entregados", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("PERÍODO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(r.PeriodLabel, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 7,
			}),
		),
	)
}

func summaryRow(r *dto.SalesReportDTO) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Top: top})
	}
	return row.New(16).Add(
		col.New(3).Add(label("Total vendido", 1), value(money.FormatCLP(r.TotalAmount), 7)),
		col.New(3).Add(label("Pedidos", 1), value(money.FormatInt(int64(r.OrderCount)), 7)),
		col.New(3).Add(label("Canal", 1), value(channelLabel(r.Channel), 7)),
		col.New(3).Add(label("Categoría", 1), value(nonEmpty(r.CategoryName, "Todas"), 7)),
	)
}

func sectionTitle(s string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2}),
	))
}

func emptyRow(s string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(s, props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
	))
}

func headerCell(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a, Top: 2, Left: 1, Right: 1,
	}))
}

func dailyHeaderRow() core.Row {
	return row.New(8).Add(
		headerCell("Fecha", 4, align.Left),
		headerCell("Pedidos", 3, align.Right),
		headerCell("Total", 5, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorStripe})
}

func dailyRows(buckets []dto.DailyBucketDTO) []core.Row {
	out := make([]core.Row, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, row.New(6).Add(
			col.New(4).Add(text.New(b.Date, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(money.FormatInt(int64(b.OrderCount)), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(5).Add(text.New(money.FormatCLP(b.TotalAmount), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return out
}

func rankingHeaderRow() core.Row {
	return row.New(8).Add(
		headerCell("#", 1, align.Center),
		headerCell("Producto", 6, align.Left),
		headerCell("Cantidad", 2, align.Right),
		headerCell("Ingresos", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorStripe})
}

func rankingRows(rankings []dto.ProductRankingDTO) []core.Row {
	out := make([]core.Row, 0, len(rankings))
	for i, p := range rankings {
		out = append(out, row.New(6).Add(
			col.New(1).Add(text.New(strconv.Itoa(i+1), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(p.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(money.FormatInt(int64(p.QuantitySold)), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(money.FormatCLP(p.Revenue), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return out
}

// ── helpers ───────────────────────────────────────────────────────────────────

func channelLabel(ch string) string {
	switch ch {
	case "client":
		return "Clientes"
	case "company":
		return "Empresas"
	default:
		return "Todos"
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
