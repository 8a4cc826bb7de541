package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// AnalyticsRepository consultas agregadas de solo lectura para el dashboard de administración.
// El reporte de ventas completo no pasa por aquí: se calcula en memoria con reporting.Aggregate.
type AnalyticsRepository interface {
	// GetSalesMetrics suma el total de los pedidos entregados con createdAt en [start, end]
	// y devuelve también cuántos son. COALESCE a cero si no hay pedidos.
	GetSalesMetrics(ctx context.Context, start, end time.Time) (total decimal.Decimal, count int, err error)
}
