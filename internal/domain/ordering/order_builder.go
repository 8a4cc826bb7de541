package ordering

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

// Build convierte las líneas del carrito en un pedido pendiente. Los precios se congelan desde
// PriceSnapshot; CreatedAt e ID los asigna el almacén al insertar.
// Valida todo antes de construir: si devuelve error no hay nada que escribir.
func Build(lines []entity.CartLine, buyer *entity.User, taxRate decimal.Decimal) (*entity.Order, error) {
	if buyer == nil || buyer.ID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if buyer.Role != entity.RoleClient {
		return nil, fmt.Errorf("%w: solo un cliente puede crear pedidos", domain.ErrForbidden)
	}
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	items := make([]entity.OrderItem, 0, len(lines))
	for _, l := range lines {
		if l.Quantity <= 0 {
			return nil, fmt.Errorf("%w: cantidad inválida para %s", domain.ErrInvalidInput, l.ItemID)
		}
		if l.PriceSnapshot.IsNegative() {
			return nil, fmt.Errorf("%w: precio negativo para %s", domain.ErrInvalidInput, l.ItemID)
		}
		if !l.Resolved() {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnresolvedOwner, l.ItemID)
		}
		items = append(items, entity.OrderItem{
			ProductID:    l.ItemID,
			OwnerID:      l.OwnerID,
			CategoryID:   l.CategoryID,
			CategoryName: l.CategoryName,
			Name:         l.Name,
			Quantity:     l.Quantity,
			UnitPrice:    l.PriceSnapshot,
		})
	}

	subtotal, tax, total := Totals(items, taxRate)
	return &entity.Order{
		BuyerID:          buyer.ID,
		BuyerDisplayName: buyer.FullName(),
		BuyerEmail:       buyer.Email,
		Items:            items,
		Subtotal:         subtotal,
		TaxAmount:        tax,
		TaxRate:          taxRate,
		Total:            total,
		OwnersInvolved:   OwnersOf(items),
		Status:           entity.OrderStatusPending,
	}, nil
}

// Totals calcula subtotal, impuesto redondeado al peso y total.
func Totals(items []entity.OrderItem, taxRate decimal.Decimal) (subtotal, tax, total decimal.Decimal) {
	subtotal = SumItems(items)
	tax = subtotal.Mul(taxRate).Round(0)
	return subtotal, tax, subtotal.Add(tax)
}

// SumItems suma UnitPrice*Quantity de los ítems dados.
func SumItems(items []entity.OrderItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Amount())
	}
	return sum
}

// OwnersOf devuelve los OwnerID distintos en orden de aparición. Siempre se recalcula desde
// los ítems, nunca se mantiene a mano.
func OwnersOf(items []entity.OrderItem) []string {
	seen := make(map[string]struct{}, len(items))
	owners := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.OwnerID]; ok {
			continue
		}
		seen[it.OwnerID] = struct{}{}
		owners = append(owners, it.OwnerID)
	}
	return owners
}
