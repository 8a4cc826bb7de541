package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Canales del reporte: tipo de cuenta del comprador.
const (
	ChannelAll     = "all"
	ChannelClient  = "client"
	ChannelCompany = "company"

	CategoryAll = "all"
)

// ReportFilter filtro efímero del reporte de ventas. DateFrom/DateTo son días calendario
// (la hora se ignora) y ambos límites son inclusivos.
type ReportFilter struct {
	DateFrom   *time.Time
	DateTo     *time.Time
	Channel    string
	CategoryID string
}

// DailyBucket ventas realizadas de un día.
type DailyBucket struct {
	Date        time.Time // medianoche local del día
	OrderCount  int
	TotalAmount decimal.Decimal
}

// ProductRanking acumulado por producto.
type ProductRanking struct {
	ProductID    string
	Name         string
	QuantitySold int
	Revenue      decimal.Decimal
}

// SalesReport salida del motor de agregación.
type SalesReport struct {
	Filter       ReportFilter
	DailyBuckets []DailyBucket
	Rankings     []ProductRanking
	TotalAmount  decimal.Decimal
}
