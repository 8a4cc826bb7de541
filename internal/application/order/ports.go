package order

import (
	"context"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

// TxRunner ejecuta fn con un repositorio de pedidos atado a una transacción: cabecera e ítems
// se escriben juntos o no se escriben.
type TxRunner interface {
	RunOrders(ctx context.Context, fn func(orders repository.OrderRepository) error) error
}

// CartSource líneas resueltas del carrito del comprador y su vaciado posterior.
type CartSource interface {
	ResolvedLines(ctx context.Context, principalID string) ([]entity.CartLine, error)
	Clear(ctx context.Context, principalID string) error
}
