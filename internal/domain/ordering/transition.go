package ordering

import (
	"fmt"

	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

// baseEdges transiciones válidas para cualquier rol habilitado.
var baseEdges = map[string][]string{
	entity.OrderStatusPending:   {entity.OrderStatusInProcess, entity.OrderStatusCancelled},
	entity.OrderStatusInProcess: {entity.OrderStatusDelivered, entity.OrderStatusCancelled},
}

// IsTerminal indica si el estado no admite más transiciones.
func IsTerminal(status string) bool {
	return status == entity.OrderStatusDelivered || status == entity.OrderStatusCancelled
}

func edgeAllowed(from, to string) bool {
	for _, s := range baseEdges[from] {
		if s == to {
			return true
		}
	}
	return false
}

// CanTransition predicado puro de autorización + máquina de estados. Lo consumen igual
// el caso de uso y la capa HTTP (para ofrecer solo acciones válidas).
func CanTransition(role string, ownersInvolved []string, viewerID, from, to string) bool {
	if !entity.IsValidOrderStatus(from) || !entity.IsValidOrderStatus(to) {
		return false
	}
	if from == to || IsTerminal(from) {
		return false
	}
	switch role {
	case entity.RoleCompany:
		if to == entity.OrderStatusPending || !contains(ownersInvolved, viewerID) {
			return false
		}
		return edgeAllowed(from, to)
	case entity.RoleAdmin, entity.RoleSuperadmin:
		if to == entity.OrderStatusPending {
			return from == entity.OrderStatusInProcess
		}
		return edgeAllowed(from, to)
	default:
		return false
	}
}

// AllowedTargets estados a los que actor puede llevar el pedido ahora.
func AllowedTargets(order *entity.Order, actor *entity.User) []string {
	if order == nil || actor == nil {
		return nil
	}
	var out []string
	for _, to := range []string{
		entity.OrderStatusPending, entity.OrderStatusInProcess,
		entity.OrderStatusDelivered, entity.OrderStatusCancelled,
	} {
		if CanTransition(actor.Role, order.OwnersInvolved, actor.ID, order.Status, to) {
			out = append(out, to)
		}
	}
	return out
}

// Transition valida el cambio y devuelve una copia con el nuevo estado; el original no se toca.
// Errores: ErrForbidden (rol), ErrNotVisible (empresa ajena al pedido), ErrInvalidTransition.
func Transition(order *entity.Order, actor *entity.User, to string) (*entity.Order, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if !entity.IsValidOrderStatus(to) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, to)
	}
	switch actor.Role {
	case entity.RoleCompany:
		if !order.InvolvesOwner(actor.ID) {
			return nil, domain.ErrNotVisible
		}
		if to == entity.OrderStatusPending {
			return nil, fmt.Errorf("%w: una empresa no puede devolver un pedido a pendiente", domain.ErrForbidden)
		}
	case entity.RoleAdmin, entity.RoleSuperadmin:
	default:
		return nil, fmt.Errorf("%w: el rol %s no cambia estados", domain.ErrForbidden, actor.Role)
	}
	if !CanTransition(actor.Role, order.OwnersInvolved, actor.ID, order.Status, to) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, order.Status, to)
	}
	next := *order
	next.Status = to
	return &next, nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
