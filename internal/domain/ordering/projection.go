package ordering

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

// Projection vista de un pedido según quién lo mira. Scoped=true cuando los ítems fueron
// filtrados para una empresa; en ese caso los totales del pedido van en cero y solo vale ViewerTotal.
type Projection struct {
	Order       entity.Order
	ViewerTotal decimal.Decimal
	Scoped      bool
}

// Project calcula la vista del pedido para viewer sin modificar order.
// Un pedido que el viewer no puede ver devuelve ErrNotVisible (igual que inexistente).
func Project(order *entity.Order, viewer *entity.User) (*Projection, error) {
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if viewer == nil {
		return nil, domain.ErrUnauthenticated
	}
	view := *order
	view.Items = append([]entity.OrderItem(nil), order.Items...)
	view.OwnersInvolved = append([]string(nil), order.OwnersInvolved...)

	switch viewer.Role {
	case entity.RoleClient:
		if order.BuyerID != viewer.ID {
			return nil, domain.ErrNotVisible
		}
		return &Projection{Order: view, ViewerTotal: order.Total}, nil

	case entity.RoleCompany:
		mine := make([]entity.OrderItem, 0, len(order.Items))
		for _, it := range order.Items {
			if it.OwnerID == viewer.ID {
				mine = append(mine, it)
			}
		}
		if len(mine) == 0 {
			return nil, domain.ErrNotVisible
		}
		view.Items = mine
		view.OwnersInvolved = []string{viewer.ID}
		view.Subtotal = decimal.Zero
		view.TaxAmount = decimal.Zero
		view.Total = decimal.Zero
		return &Projection{Order: view, ViewerTotal: SumItems(mine), Scoped: true}, nil

	case entity.RoleAdmin, entity.RoleSuperadmin:
		return &Projection{Order: view, ViewerTotal: order.Total}, nil
	}
	return nil, domain.ErrNotVisible
}

// ProjectAll proyecta una lista; los pedidos no visibles se omiten en vez de fallar.
func ProjectAll(orders []*entity.Order, viewer *entity.User) []Projection {
	out := make([]Projection, 0, len(orders))
	for _, o := range orders {
		p, err := Project(o, viewer)
		if err != nil {
			continue
		}
		out = append(out, *p)
	}
	return out
}
