package dto

import "github.com/shopspring/decimal"

// AddCartItemRequest agrega un producto al carrito (suma si ya existe).
type AddCartItemRequest struct {
	ItemID   string `json:"item_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"min=1"`
}

// ChangeQuantityRequest suma delta a la cantidad; si queda <= 0 la línea se elimina.
type ChangeQuantityRequest struct {
	Delta int `json:"delta"`
}

// CartLineResponse línea del carrito.
type CartLineResponse struct {
	ItemID        string          `json:"item_id"`
	Name          string          `json:"name"`
	Quantity      int             `json:"quantity"`
	PriceSnapshot decimal.Decimal `json:"price_snapshot"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	OwnerID       string          `json:"owner_id"`
	CategoryID    string          `json:"category_id"`
	CategoryName  string          `json:"category_name"`
}

// CartResponse carrito completo con total sin impuestos.
type CartResponse struct {
	Lines []CartLineResponse `json:"lines"`
	Total decimal.Decimal    `json:"total"`
	Count int                `json:"count"` // unidades totales
}
