package repository

import (
	"context"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para perfiles (DIP).
// GetByID devuelve (nil, nil) si no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// Update escribe los datos de perfil; el rol almacenado se conserva.
	Update(ctx context.Context, user *entity.User) error
	// UpdateWithRole escribe perfil y rol en una sola operación (todo o nada).
	UpdateWithRole(ctx context.Context, user *entity.User) error
	// UpdateRole escribe solo el rol; es la única vía de cambio de rol.
	UpdateRole(ctx context.Context, id, role string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.User, error)
	// ExistsWithRole indica si algún perfil tiene el rol dado (arranque del superadmin).
	ExistsWithRole(ctx context.Context, role string) (bool, error)
}
