package repository

import (
	"context"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

// CartRepository almacén de carritos por principal.
type CartRepository interface {
	ListLines(ctx context.Context, principalID string) ([]entity.CartLine, error)
	GetLine(ctx context.Context, principalID, itemID string) (*entity.CartLine, error)
	// SaveLine inserta o reemplaza la línea (principal, ítem).
	SaveLine(ctx context.Context, line entity.CartLine) error
	DeleteLine(ctx context.Context, principalID, itemID string) error
	Clear(ctx context.Context, principalID string) error
}
