package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/admin/dashboard.
type DashboardSummaryDTO struct {
	PendingOrders  int             `json:"pending_orders"`
	MonthSales     decimal.Decimal `json:"month_sales"` // Σ total de pedidos entregados del mes en curso
	MonthOrders    int             `json:"month_orders"`
	ActiveProducts int             `json:"active_products"`
	LatestOrders   []OrderResponse `json:"latest_orders"`
	DateLabel      string          `json:"date_label"` // ej: "Marzo 2024"
}
