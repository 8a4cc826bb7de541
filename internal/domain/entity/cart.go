package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine línea del carrito de un principal. PriceSnapshot se toma al agregar el producto;
// OwnerID y la categoría se resuelven desde el catálogo si faltan y quedan cacheados.
type CartLine struct {
	PrincipalID   string
	ItemID        string
	Name          string
	Quantity      int
	PriceSnapshot decimal.Decimal
	OwnerID       string
	CategoryID    string
	CategoryName  string
	UpdatedAt     time.Time
}

// Amount devuelve PriceSnapshot * Quantity.
func (l CartLine) Amount() decimal.Decimal {
	return l.PriceSnapshot.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Resolved indica si la línea ya tiene dueño conocido.
func (l CartLine) Resolved() bool {
	return l.OwnerID != ""
}
