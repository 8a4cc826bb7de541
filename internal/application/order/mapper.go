package order

import (
	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/ordering"
)

// ToResponse convierte una proyección a DTO. En vistas acotadas (empresa) los totales del
// pedido no se serializan.
func ToResponse(p ordering.Projection, viewer *entity.User) dto.OrderResponse {
	o := p.Order
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID:    it.ProductID,
			OwnerID:      it.OwnerID,
			CategoryID:   it.CategoryID,
			CategoryName: it.CategoryName,
			Name:         it.Name,
			Quantity:     it.Quantity,
			UnitPrice:    it.UnitPrice,
			Amount:       it.Amount(),
		})
	}
	resp := dto.OrderResponse{
		ID:               o.ID,
		BuyerID:          o.BuyerID,
		BuyerDisplayName: o.BuyerDisplayName,
		BuyerEmail:       o.BuyerEmail,
		Items:            items,
		ViewerTotal:      p.ViewerTotal,
		Scoped:           p.Scoped,
		OwnersInvolved:   o.OwnersInvolved,
		Status:           o.Status,
		AllowedStatuses:  ordering.AllowedTargets(&o, viewer),
		CreatedAt:        o.CreatedAt,
	}
	if !p.Scoped {
		resp.Subtotal = &o.Subtotal
		resp.TaxAmount = &o.TaxAmount
		resp.TaxRate = &o.TaxRate
		resp.Total = &o.Total
	}
	if resp.AllowedStatuses == nil {
		resp.AllowedStatuses = []string{}
	}
	return resp
}

// ToResponses convierte una lista de proyecciones.
func ToResponses(ps []ordering.Projection, viewer *entity.User) []dto.OrderResponse {
	out := make([]dto.OrderResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, ToResponse(p, viewer))
	}
	return out
}
