package postgres

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetSalesMetrics suma el total y cuenta los pedidos entregados del período.
// Usa COALESCE para devolver cero si no hay filas (período sin ventas).
func (r *AnalyticsRepo) GetSalesMetrics(ctx context.Context, start, end time.Time) (total decimal.Decimal, count int, err error) {
	const query = `
	SELECT
	    COALESCE(SUM(o.total), 0) AS total,
	    COUNT(*)                  AS order_count
	FROM orders o
	WHERE o.status = $1
	  AND o.created_at BETWEEN $2 AND $3`

	err = r.q.QueryRow(ctx, query, entity.OrderStatusDelivered, start, end).Scan(&total, &count)
	if err != nil {
		return decimal.Zero, 0, wrap("analytics.GetSalesMetrics", err)
	}
	return total, count, nil
}
