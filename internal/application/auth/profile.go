package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/pkg/rut"
)

// ValidateProfile aplica las reglas del formulario de registro (etiquetas validate del DTO).
// Los campos se comparan sin espacios al borde.
func ValidateProfile(in dto.ProfileRequest) error {
	in.Nombre = strings.TrimSpace(in.Nombre)
	in.ApellidoPaterno = strings.TrimSpace(in.ApellidoPaterno)
	in.ApellidoMaterno = strings.TrimSpace(in.ApellidoMaterno)
	in.Email = strings.TrimSpace(in.Email)
	in.RUT = strings.TrimSpace(in.RUT)
	return dto.Validate(in)
}

// RegisterProfile completa el perfil del principal. El rol se deriva del tipo de cuenta
// (Empresa -> company, Cliente -> client); admin y superadmin conservan su rol.
func (r *Resolver) RegisterProfile(ctx context.Context, principal *entity.User, in dto.ProfileRequest) (*entity.User, error) {
	if principal == nil {
		return nil, domain.ErrUnauthenticated
	}
	if err := ValidateProfile(in); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if principal.Email != "" && email != strings.ToLower(principal.Email) {
		return nil, fmt.Errorf("%w: el email no coincide con la sesión", domain.ErrInvalidInput)
	}

	u := *principal
	u.Nombre = strings.TrimSpace(in.Nombre)
	u.ApellidoPaterno = strings.TrimSpace(in.ApellidoPaterno)
	u.ApellidoMaterno = strings.TrimSpace(in.ApellidoMaterno)
	u.RUT = rut.Clean(in.RUT)
	u.Email = email
	u.AccountKind = in.AccountKind
	u.DisplayName = u.Nombre + " " + u.ApellidoPaterno
	if !entity.IsStaff(u.Role) {
		u.Role = entity.RoleClient
		if in.AccountKind == entity.AccountKindEmpresa {
			u.Role = entity.RoleCompany
		}
	}
	u.UpdatedAt = r.now()

	// perfil y rol derivado viajan en la misma escritura
	if err := r.users.UpdateWithRole(ctx, &u); err != nil {
		return nil, fmt.Errorf("guardar perfil: %w", err)
	}
	r.log.Info().Str("user_id", u.ID).Str("role", u.Role).Str("account_kind", u.AccountKind).Msg("perfil registrado")
	return &u, nil
}

// ToUserResponse convierte el perfil a DTO.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		DisplayName:     u.DisplayName,
		Nombre:          u.Nombre,
		ApellidoPaterno: u.ApellidoPaterno,
		ApellidoMaterno: u.ApellidoMaterno,
		RUT:             u.RUT,
		Role:            u.Role,
		AccountKind:     u.AccountKind,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}
