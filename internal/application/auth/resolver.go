package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
	"github.com/jhoicas/pedidos-api/pkg/jwt"
)

// Resolver une la identidad del proveedor externo con el perfil almacenado. El rol y el tipo
// de cuenta salen siempre del perfil, nunca del token.
type Resolver struct {
	users           repository.UserRepository
	superadminEmail string
	log             zerolog.Logger

	// serializa la creación de perfiles para que el arranque del superadmin no se duplique
	// dentro de un mismo proceso
	mu  sync.Mutex
	now func() time.Time
}

// NewResolver construye el resolver. superadminEmail vacío desactiva el arranque del superadmin.
func NewResolver(users repository.UserRepository, superadminEmail string, log zerolog.Logger) *Resolver {
	return &Resolver{
		users:           users,
		superadminEmail: strings.ToLower(strings.TrimSpace(superadminEmail)),
		log:             log,
		now:             time.Now,
	}
}

// Resolve devuelve el principal para la identidad; si es su primer ingreso crea el perfil
// como client/Cliente, o como superadmin si el email coincide y aún no existe uno.
func (r *Resolver) Resolve(ctx context.Context, id jwt.Identity) (*entity.User, error) {
	if id.UID == "" {
		return nil, domain.ErrUnauthenticated
	}
	u, err := r.users.GetByID(ctx, id.UID)
	if err != nil {
		return nil, fmt.Errorf("resolver perfil: %w", err)
	}
	if u != nil {
		return u, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// otro request pudo crearlo mientras esperábamos el lock
	if u, err = r.users.GetByID(ctx, id.UID); err != nil || u != nil {
		return u, err
	}

	role := entity.RoleClient
	email := strings.ToLower(strings.TrimSpace(id.Email))
	if r.superadminEmail != "" && email == r.superadminEmail {
		exists, err := r.users.ExistsWithRole(ctx, entity.RoleSuperadmin)
		if err != nil {
			return nil, fmt.Errorf("resolver perfil: %w", err)
		}
		if !exists {
			role = entity.RoleSuperadmin
		}
	}

	now := r.now()
	u = &entity.User{
		ID:          id.UID,
		Email:       email,
		DisplayName: id.DisplayName,
		Role:        role,
		AccountKind: entity.AccountKindCliente,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err = r.users.Create(ctx, u)
	if errors.Is(err, domain.ErrSingleSuperadmin) {
		// otra instancia creó el superadmin entre la consulta y el insert
		u.Role = entity.RoleClient
		err = r.users.Create(ctx, u)
	}
	if err != nil {
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("crear perfil: %w", err)
		}
		existing, gerr := r.users.GetByID(ctx, id.UID)
		if gerr != nil {
			return nil, fmt.Errorf("resolver perfil: %w", gerr)
		}
		if existing == nil {
			// el uid no existe: lo que chocó fue el email de otro perfil
			r.log.Warn().Str("user_id", id.UID).Str("email", email).Msg("email ya asociado a otro perfil")
			return nil, fmt.Errorf("%w: el email ya está asociado a otro usuario", domain.ErrDuplicate)
		}
		return existing, nil
	}
	r.log.Info().Str("user_id", u.ID).Str("role", u.Role).Msg("perfil creado en primer ingreso")
	return u, nil
}
