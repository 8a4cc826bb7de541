package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del pedido.
const (
	OrderStatusPending   = "pending"
	OrderStatusInProcess = "in_process"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// IsValidOrderStatus indica si s pertenece al conjunto definido.
func IsValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusInProcess, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderItem línea inmutable de un pedido. UnitPrice es el precio congelado al enviar el carrito.
type OrderItem struct {
	ProductID    string
	OwnerID      string
	CategoryID   string
	CategoryName string
	Name         string
	Quantity     int
	UnitPrice    decimal.Decimal
}

// Amount devuelve UnitPrice * Quantity.
func (i OrderItem) Amount() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order pedido compartido: una sola solicitud puede incluir productos de varias empresas.
// Después de creado solo Status cambia.
type Order struct {
	ID               string
	BuyerID          string
	BuyerDisplayName string
	BuyerEmail       string
	Items            []OrderItem
	Subtotal         decimal.Decimal
	TaxAmount        decimal.Decimal
	TaxRate          decimal.Decimal
	Total            decimal.Decimal
	OwnersInvolved   []string // conjunto distinto de Items[].OwnerID, en orden de aparición
	Status           string
	CreatedAt        time.Time // asignado por el servidor de base de datos
}

// InvolvesOwner indica si ownerID aparece en OwnersInvolved.
func (o *Order) InvolvesOwner(ownerID string) bool {
	for _, id := range o.OwnersInvolved {
		if id == ownerID {
			return true
		}
	}
	return false
}
