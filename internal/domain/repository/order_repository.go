package repository

import (
	"context"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

// OrderRepository puerto de la colección orders. Los ítems son inmutables: después de Create
// la única escritura permitida es UpdateStatus.
type OrderRepository interface {
	// Create inserta cabecera e ítems; completa ID y CreatedAt asignados por el servidor.
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// UpdateStatus escribe solo status; devuelve domain.ErrNotFound si el pedido no existe.
	UpdateStatus(ctx context.Context, id, status string) error
	ListByBuyer(ctx context.Context, buyerID string) ([]*entity.Order, error)
	// ListByOwner pedidos donde ownerID aparece en owners_involved.
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Order, error)
	ListAll(ctx context.Context) ([]*entity.Order, error)
	// ListByStatus devuelve los pedidos del estado en orden de creación ascendente.
	ListByStatus(ctx context.Context, status string) ([]*entity.Order, error)
	ListLatest(ctx context.Context, limit int) ([]*entity.Order, error)
	CountByStatus(ctx context.Context, status string) (int, error)
}
