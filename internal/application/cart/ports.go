package cart

import (
	"context"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

// CatalogReader puerto de lectura del catálogo vigente; lo implementa el repositorio de
// productos y en tests cualquier fake.
type CatalogReader interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
}
