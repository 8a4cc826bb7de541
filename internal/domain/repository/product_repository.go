package repository

import (
	"context"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para el catálogo (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	// Upsert inserta o reemplaza por ID; lo usa la importación del catálogo base.
	Upsert(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
	// ListActive productos visibles para compradores; categoryID vacío = todas.
	ListActive(ctx context.Context, categoryID string) ([]*entity.Product, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Product, error)
	CountActive(ctx context.Context) (int, error)
}
