// Package order orquesta el ciclo de vida de pedidos: creación desde el carrito, proyección por
// viewer y cambios de estado. Las reglas viven en domain/ordering; aquí solo se persiste.
package order

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/ordering"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

// UseCase casos de uso de pedidos.
type UseCase struct {
	orders  repository.OrderRepository
	tx      TxRunner
	cart    CartSource
	taxRate decimal.Decimal
	log     zerolog.Logger
}

// NewUseCase construye el caso de uso. taxRate es el IVA configurado (ORDER_TAX_RATE).
func NewUseCase(orders repository.OrderRepository, tx TxRunner, cart CartSource, taxRate decimal.Decimal, log zerolog.Logger) *UseCase {
	return &UseCase{orders: orders, tx: tx, cart: cart, taxRate: taxRate, log: log}
}

// Create convierte el carrito del comprador en un pedido pendiente. El carrito se vacía solo
// después de insertar el pedido; si algo falla antes, queda intacto.
func (uc *UseCase) Create(ctx context.Context, buyer *entity.User) (*dto.OrderResponse, error) {
	if buyer == nil {
		return nil, domain.ErrUnauthenticated
	}
	lines, err := uc.cart.ResolvedLines(ctx, buyer.ID)
	if err != nil {
		return nil, err
	}
	o, err := ordering.Build(lines, buyer, uc.taxRate)
	if err != nil {
		return nil, err
	}

	err = uc.tx.RunOrders(ctx, func(orders repository.OrderRepository) error {
		return orders.Create(ctx, o)
	})
	if err != nil {
		return nil, fmt.Errorf("crear pedido: %w", err)
	}

	if err := uc.cart.Clear(ctx, buyer.ID); err != nil {
		// el pedido ya existe; un carrito sin vaciar no invalida la compra
		uc.log.Error().Err(err).Str("order_id", o.ID).Str("buyer_id", buyer.ID).Msg("no se pudo vaciar el carrito")
	}
	uc.log.Info().
		Str("order_id", o.ID).
		Str("buyer_id", buyer.ID).
		Strs("owners", o.OwnersInvolved).
		Str("total", o.Total.String()).
		Msg("pedido creado")

	p, err := ordering.Project(o, buyer)
	if err != nil {
		return nil, err
	}
	resp := ToResponse(*p, buyer)
	return &resp, nil
}

// List devuelve los pedidos visibles para viewer, ya proyectados, más recientes primero.
func (uc *UseCase) List(ctx context.Context, viewer *entity.User) ([]dto.OrderResponse, error) {
	if viewer == nil {
		return nil, domain.ErrUnauthenticated
	}
	var (
		list []*entity.Order
		err  error
	)
	switch viewer.Role {
	case entity.RoleClient:
		list, err = uc.orders.ListByBuyer(ctx, viewer.ID)
	case entity.RoleCompany:
		list, err = uc.orders.ListByOwner(ctx, viewer.ID)
	case entity.RoleAdmin, entity.RoleSuperadmin:
		list, err = uc.orders.ListAll(ctx)
	default:
		return nil, domain.ErrForbidden
	}
	if err != nil {
		return nil, fmt.Errorf("listar pedidos: %w", err)
	}
	return ToResponses(ordering.ProjectAll(list, viewer), viewer), nil
}

// Get devuelve la proyección de un pedido; inexistente y no visible responden igual.
func (uc *UseCase) Get(ctx context.Context, viewer *entity.User, id string) (*dto.OrderResponse, error) {
	o, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	p, err := ordering.Project(o, viewer)
	if err != nil {
		return nil, err
	}
	resp := ToResponse(*p, viewer)
	return &resp, nil
}

// UpdateStatus aplica la transición y persiste solo el estado.
func (uc *UseCase) UpdateStatus(ctx context.Context, actor *entity.User, id, status string) (*dto.OrderResponse, error) {
	o, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := ordering.Transition(o, actor, status)
	if err != nil {
		uc.log.Warn().Err(err).Str("order_id", id).Str("actor_id", actorID(actor)).Str("to", status).Msg("transición rechazada")
		return nil, err
	}
	if err := uc.orders.UpdateStatus(ctx, id, next.Status); err != nil {
		return nil, fmt.Errorf("actualizar estado: %w", err)
	}
	uc.log.Info().
		Str("order_id", id).
		Str("actor_id", actor.ID).
		Str("from", o.Status).
		Str("to", next.Status).
		Msg("estado de pedido actualizado")

	p, err := ordering.Project(next, actor)
	if err != nil {
		return nil, err
	}
	resp := ToResponse(*p, actor)
	return &resp, nil
}

func (uc *UseCase) load(ctx context.Context, id string) (*entity.Order, error) {
	o, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener pedido: %w", err)
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

func actorID(u *entity.User) string {
	if u == nil {
		return ""
	}
	return u.ID
}
