package dto

import "github.com/shopspring/decimal"

// SalesReportRequest filtro del reporte de ventas (query string). Fechas YYYY-MM-DD.
type SalesReportRequest struct {
	DateFrom   string `query:"date_from"`
	DateTo     string `query:"date_to"`
	Channel    string `query:"channel" validate:"omitempty,oneof=all client company"`
	CategoryID string `query:"category_id"`
	TopN       int    `query:"top_n"`
	Format     string `query:"format" validate:"omitempty,oneof=pdf xlsx"`
}

// DailyBucketDTO ventas de un día.
type DailyBucketDTO struct {
	Date        string          `json:"date"` // YYYY-MM-DD
	OrderCount  int             `json:"order_count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// ProductRankingDTO posición en el ranking de productos.
type ProductRankingDTO struct {
	ProductID    string          `json:"product_id,omitempty"`
	Name         string          `json:"name"`
	QuantitySold int             `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// SalesReportDTO respuesta de GET /api/reports/sales.
type SalesReportDTO struct {
	DateFrom     string              `json:"date_from,omitempty"`
	DateTo       string              `json:"date_to,omitempty"`
	Channel      string              `json:"channel"`
	CategoryID   string              `json:"category_id"`
	CategoryName string              `json:"category_name"`
	PeriodLabel  string              `json:"period_label"`
	TotalAmount  decimal.Decimal     `json:"total_amount"`
	OrderCount   int                 `json:"order_count"`
	DailyBuckets []DailyBucketDTO    `json:"daily_buckets"`
	Rankings     []ProductRankingDTO `json:"rankings"`
}
