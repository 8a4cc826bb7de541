// Package admin protege las operaciones sobre la colección de usuarios: solo el superadmin
// las ejecuta, nunca hay dos superadmin y el superadmin no puede borrarse ni degradarse.
package admin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/pedidos-api/internal/application/auth"
	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
	"github.com/jhoicas/pedidos-api/pkg/rut"
)

// Guard casos de uso de administración de roles y usuarios.
type Guard struct {
	users repository.UserRepository
	log   zerolog.Logger
	now   func() time.Time
}

// NewGuard construye el guard.
func NewGuard(users repository.UserRepository, log zerolog.Logger) *Guard {
	return &Guard{users: users, log: log, now: time.Now}
}

// authorize carga al actor desde el almacén y exige que sea superadmin. Se verifica antes de
// cualquier escritura.
func (g *Guard) authorize(ctx context.Context, actorID, op string) (*entity.User, error) {
	if actorID == "" {
		return nil, domain.ErrUnauthenticated
	}
	actor, err := g.users.GetByID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("%s: cargar actor: %w", op, err)
	}
	if actor == nil || actor.Role != entity.RoleSuperadmin {
		g.log.Warn().Str("actor_id", actorID).Str("op", op).Msg("operación de administración denegada")
		return nil, domain.ErrForbidden
	}
	return actor, nil
}

// checkRole aplica los invariantes del cambio de rol sin escribir nada.
func checkRole(actorID, targetID, newRole string) error {
	if !entity.IsValidRole(newRole) {
		return fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, newRole)
	}
	if newRole == entity.RoleSuperadmin && targetID != actorID {
		return domain.ErrSingleSuperadmin
	}
	if targetID == actorID && newRole != entity.RoleSuperadmin {
		return domain.ErrSelfDemotion
	}
	return nil
}

// SetRole cambia el rol de targetID. Errores: ErrForbidden, ErrSingleSuperadmin,
// ErrSelfDemotion, ErrUserNotFound.
func (g *Guard) SetRole(ctx context.Context, actorID, targetID, newRole string) (*dto.UserResponse, error) {
	if _, err := g.authorize(ctx, actorID, "set_role"); err != nil {
		return nil, err
	}
	if err := checkRole(actorID, targetID, newRole); err != nil {
		g.log.Warn().Err(err).Str("actor_id", actorID).Str("target_id", targetID).Str("role", newRole).Msg("cambio de rol rechazado")
		return nil, err
	}
	target, err := g.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("set_role: cargar usuario: %w", err)
	}
	if target == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := g.users.UpdateRole(ctx, targetID, newRole); err != nil {
		return nil, fmt.Errorf("set_role: %w", err)
	}
	g.log.Info().Str("actor_id", actorID).Str("target_id", targetID).Str("from", target.Role).Str("to", newRole).Msg("rol actualizado")
	target.Role = newRole
	return auth.ToUserResponse(target), nil
}

// DeleteUser elimina el perfil de targetID. No revoca credenciales ya emitidas por el proveedor.
func (g *Guard) DeleteUser(ctx context.Context, actorID, targetID string) error {
	if _, err := g.authorize(ctx, actorID, "delete_user"); err != nil {
		return err
	}
	if targetID == actorID {
		g.log.Warn().Str("actor_id", actorID).Msg("intento de autoeliminación")
		return domain.ErrSelfDeletion
	}
	if err := g.users.Delete(ctx, targetID); err != nil {
		return fmt.Errorf("delete_user: %w", err)
	}
	g.log.Info().Str("actor_id", actorID).Str("target_id", targetID).Msg("usuario eliminado")
	return nil
}

// ListUsers lista todos los perfiles.
func (g *Guard) ListUsers(ctx context.Context, actorID string) ([]*dto.UserResponse, error) {
	if _, err := g.authorize(ctx, actorID, "list_users"); err != nil {
		return nil, err
	}
	users, err := g.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list_users: %w", err)
	}
	out := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, auth.ToUserResponse(u))
	}
	return out, nil
}

// UpdateUser edita los datos de perfil y, si viene, el rol. Los invariantes de rol se validan
// antes de escribir cualquiera de las dos partes.
func (g *Guard) UpdateUser(ctx context.Context, actorID, targetID string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if _, err := g.authorize(ctx, actorID, "update_user"); err != nil {
		return nil, err
	}
	target, err := g.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("update_user: cargar usuario: %w", err)
	}
	if target == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Role != "" && in.Role != target.Role {
		if err := checkRole(actorID, targetID, in.Role); err != nil {
			g.log.Warn().Err(err).Str("actor_id", actorID).Str("target_id", targetID).Str("role", in.Role).Msg("cambio de rol rechazado")
			return nil, err
		}
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.RUT != "" {
		target.RUT = rut.Clean(in.RUT)
	}
	if in.AccountKind != "" {
		target.AccountKind = in.AccountKind
	}
	setIfNotEmpty(&target.DisplayName, in.DisplayName)
	setIfNotEmpty(&target.Nombre, in.Nombre)
	setIfNotEmpty(&target.ApellidoPaterno, in.ApellidoPaterno)
	setIfNotEmpty(&target.ApellidoMaterno, in.ApellidoMaterno)
	target.UpdatedAt = g.now()

	from := target.Role
	if in.Role != "" {
		target.Role = in.Role
	}
	// perfil y rol en una sola escritura: si el rol es rechazado no queda nada a medias
	if err := g.users.UpdateWithRole(ctx, target); err != nil {
		return nil, fmt.Errorf("update_user: %w", err)
	}
	if target.Role != from {
		g.log.Info().Str("actor_id", actorID).Str("target_id", targetID).Str("from", from).Str("to", target.Role).Msg("rol actualizado")
	}
	return auth.ToUserResponse(target), nil
}

func setIfNotEmpty(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}
