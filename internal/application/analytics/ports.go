package analytics

import "github.com/jhoicas/pedidos-api/internal/application/dto"

// ReportRenderer serializa el reporte de ventas a un formato descargable. Cada implementación
// escribe las tres tablas lógicas: metadatos, buckets diarios y ranking de productos.
type ReportRenderer interface {
	Render(report *dto.SalesReportDTO) ([]byte, error)
	ContentType() string
	Extension() string
}
