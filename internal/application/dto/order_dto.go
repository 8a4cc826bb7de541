package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpdateOrderStatusRequest cambio de estado.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_process delivered cancelled"`
}

// OrderItemResponse línea de pedido.
type OrderItemResponse struct {
	ProductID    string          `json:"product_id"`
	OwnerID      string          `json:"owner_id"`
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Name         string          `json:"name"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Amount       decimal.Decimal `json:"amount"`
}

// OrderResponse proyección de un pedido para quien lo consulta. Cuando Scoped es true
// (vista de empresa) los totales del pedido se omiten y solo viaja ViewerTotal.
type OrderResponse struct {
	ID               string              `json:"id"`
	BuyerID          string              `json:"buyer_id"`
	BuyerDisplayName string              `json:"buyer_display_name"`
	BuyerEmail       string              `json:"buyer_email"`
	Items            []OrderItemResponse `json:"items"`
	Subtotal         *decimal.Decimal    `json:"subtotal,omitempty"`
	TaxAmount        *decimal.Decimal    `json:"tax_amount,omitempty"`
	TaxRate          *decimal.Decimal    `json:"tax_rate,omitempty"`
	Total            *decimal.Decimal    `json:"total,omitempty"`
	ViewerTotal      decimal.Decimal     `json:"viewer_total"`
	Scoped           bool                `json:"scoped"`
	OwnersInvolved   []string            `json:"owners_involved"`
	Status           string              `json:"status"`
	AllowedStatuses  []string            `json:"allowed_statuses"`
	CreatedAt        time.Time           `json:"created_at"`
}
