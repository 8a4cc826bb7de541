// Package spreadsheet exporta el reporte de ventas como libro Office Open XML (.xlsx).
package spreadsheet

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/pedidos-api/internal/application/analytics"
	"github.com/jhoicas/pedidos-api/internal/application/dto"
)

var _ analytics.ReportRenderer = (*WorkbookRenderer)(nil)

// Nombres de hoja y encabezados. El orden de columnas es parte del contrato de exportación.
const (
	SheetSummary  = "Resumen"
	SheetDaily    = "Daily"
	SheetProducts = "Products"
)

var (
	DailyColumns   = []string{"Date", "OrderCount", "TotalAmount"}
	ProductColumns = []string{"ProductName", "QuantitySold", "Revenue"}
)

// WorkbookRenderer implementa analytics.ReportRenderer para .xlsx.
type WorkbookRenderer struct{}

// NewWorkbookRenderer construye el renderer.
func NewWorkbookRenderer() *WorkbookRenderer { return &WorkbookRenderer{} }

func (w *WorkbookRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (w *WorkbookRenderer) Extension() string { return "xlsx" }

type sheet struct {
	name string
	rows [][]interface{}
}

// Render genera el libro con tres hojas: metadatos, buckets diarios y ranking de productos.
func (w *WorkbookRenderer) Render(report *dto.SalesReportDTO) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("spreadsheet: reporte nil")
	}
	sheets := []sheet{
		{name: SheetSummary, rows: summaryRows(report)},
		{name: SheetDaily, rows: dailyRows(report.DailyBuckets)},
		{name: SheetProducts, rows: productRows(report.Rankings)},
	}

	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DCE6F1"}},
	})
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: estilo encabezado: %w", err)
	}

	// el libro nuevo trae "Sheet1"; se renombra a la primera hoja del reporte
	if err := f.SetSheetName(f.GetSheetName(0), sheets[0].name); err != nil {
		return nil, fmt.Errorf("spreadsheet: renombrar hoja: %w", err)
	}
	for i, s := range sheets {
		if i > 0 {
			if _, err := f.NewSheet(s.name); err != nil {
				return nil, fmt.Errorf("spreadsheet: crear hoja %s: %w", s.name, err)
			}
		}
		if err := writeRows(f, s); err != nil {
			return nil, err
		}
		if err := f.SetRowStyle(s.name, 1, 1, bold); err != nil {
			return nil, fmt.Errorf("spreadsheet: estilo %s: %w", s.name, err)
		}
		if err := f.SetColWidth(s.name, "A", "C", 20); err != nil {
			return nil, fmt.Errorf("spreadsheet: ancho %s: %w", s.name, err)
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, s sheet) error {
	for i := range s.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("spreadsheet: celda fila %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(s.name, cell, &s.rows[i]); err != nil {
			return fmt.Errorf("spreadsheet: fila %d de %s: %w", i+1, s.name, err)
		}
	}
	return nil
}

// amount montos como número para que la planilla pueda sumarlos.
func amount(d decimal.Decimal) float64 { return d.InexactFloat64() }

func header(cols []string) []interface{} {
	out := make([]interface{}, len(cols))
	for i, c := range cols {
		out[i] = c
	}
	return out
}

func summaryRows(r *dto.SalesReportDTO) [][]interface{} {
	return [][]interface{}{
		{"Campo", "Valor"},
		{"Periodo", r.PeriodLabel},
		{"DateFrom", r.DateFrom},
		{"DateTo", r.DateTo},
		{"Channel", r.Channel},
		{"CategoryID", r.CategoryID},
		{"CategoryName", r.CategoryName},
		{"OrderCount", r.OrderCount},
		{"TotalAmount", amount(r.TotalAmount)},
	}
}

func dailyRows(buckets []dto.DailyBucketDTO) [][]interface{} {
	rows := [][]interface{}{header(DailyColumns)}
	for _, b := range buckets {
		rows = append(rows, []interface{}{b.Date, b.OrderCount, amount(b.TotalAmount)})
	}
	return rows
}

func productRows(rankings []dto.ProductRankingDTO) [][]interface{} {
	rows := [][]interface{}{header(ProductColumns)}
	for _, p := range rankings {
		rows = append(rows, []interface{}{p.Name, p.QuantitySold, amount(p.Revenue)})
	}
	return rows
}
