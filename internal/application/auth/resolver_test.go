package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pedidos-api/internal/application/auth"
	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/infrastructure/memory"
	"github.com/jhoicas/pedidos-api/pkg/jwt"
)

const superEmail = "admin@casino.cl"

func newResolver(users *memory.UserStore) *auth.Resolver {
	return auth.NewResolver(users, superEmail, zerolog.Nop())
}

func TestResolve_PrimerIngresoCliente(t *testing.T) {
	users := memory.NewUserStore()
	u, err := newResolver(users).Resolve(context.Background(), jwt.Identity{UID: "u1", Email: "Ana@Mail.cl", DisplayName: "Ana"})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleClient, u.Role)
	assert.Equal(t, entity.AccountKindCliente, u.AccountKind)
	assert.Equal(t, "ana@mail.cl", u.Email)

	stored, _ := users.GetByID(context.Background(), "u1")
	require.NotNil(t, stored)
}

func TestResolve_ArranqueSuperadmin(t *testing.T) {
	users := memory.NewUserStore()
	r := newResolver(users)

	u, err := r.Resolve(context.Background(), jwt.Identity{UID: "sa", Email: "ADMIN@casino.cl"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSuperadmin, u.Role)
}

func TestResolve_SuperadminExistenteNoSeDuplica(t *testing.T) {
	users := memory.NewUserStore(&entity.User{ID: "sa", Email: "otro@casino.cl", Role: entity.RoleSuperadmin})
	u, err := newResolver(users).Resolve(context.Background(), jwt.Identity{UID: "u2", Email: superEmail})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleClient, u.Role)
}

func TestResolve_RolDesdePerfilNoDesdeToken(t *testing.T) {
	users := memory.NewUserStore(&entity.User{ID: "c1", Email: "empresa@mail.cl", Role: entity.RoleCompany, AccountKind: entity.AccountKindEmpresa})
	u, err := newResolver(users).Resolve(context.Background(), jwt.Identity{UID: "c1", Email: "empresa@mail.cl"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCompany, u.Role)
}

func TestResolve_EmailDeOtroPerfil(t *testing.T) {
	users := memory.NewUserStore(&entity.User{ID: "old", Email: "ana@mail.cl", Role: entity.RoleClient})
	u, err := newResolver(users).Resolve(context.Background(), jwt.Identity{UID: "new", Email: "Ana@mail.cl"})

	assert.Nil(t, u)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	stored, _ := users.GetByID(context.Background(), "new")
	assert.Nil(t, stored)
}

// staleExists responde que no hay superadmin aunque otra instancia ya lo haya creado.
type staleExists struct{ *memory.UserStore }

func (staleExists) ExistsWithRole(context.Context, string) (bool, error) { return false, nil }

func TestResolve_SuperadminCreadoEnParaleloQuedaCliente(t *testing.T) {
	users := memory.NewUserStore(&entity.User{ID: "sa", Email: "otro@casino.cl", Role: entity.RoleSuperadmin})
	r := auth.NewResolver(staleExists{users}, superEmail, zerolog.Nop())

	u, err := r.Resolve(context.Background(), jwt.Identity{UID: "u3", Email: superEmail})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleClient, u.Role)
}

func TestResolve_Errores(t *testing.T) {
	users := memory.NewUserStore()
	_, err := newResolver(users).Resolve(context.Background(), jwt.Identity{})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	users.Err = domain.ErrStoreUnavailable
	_, err = newResolver(users).Resolve(context.Background(), jwt.Identity{UID: "x"})
	assert.True(t, errors.Is(err, domain.ErrStoreUnavailable))
}

func validProfile() dto.ProfileRequest {
	return dto.ProfileRequest{
		Nombre:          "Camila",
		ApellidoPaterno: "González",
		ApellidoMaterno: "Muñoz",
		RUT:             "12.345.678-5",
		Email:           "camila@mail.cl",
		AccountKind:     entity.AccountKindEmpresa,
	}
}

func TestRegisterProfile_EmpresaQuedaCompany(t *testing.T) {
	principal := &entity.User{ID: "u1", Email: "camila@mail.cl", Role: entity.RoleClient, AccountKind: entity.AccountKindCliente}
	users := memory.NewUserStore(principal)

	u, err := newResolver(users).RegisterProfile(context.Background(), principal, validProfile())
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCompany, u.Role)
	assert.Equal(t, "123456785", u.RUT)
	assert.Equal(t, "Camila González", u.DisplayName)

	stored, err := users.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCompany, stored.Role, "el rol derivado queda persistido")
	assert.Equal(t, entity.AccountKindEmpresa, stored.AccountKind)
}

func TestRegisterProfile_NuncaEscalaNiDegradaStaff(t *testing.T) {
	principal := &entity.User{ID: "sa", Email: "camila@mail.cl", Role: entity.RoleSuperadmin}
	users := memory.NewUserStore(principal)

	in := validProfile()
	in.AccountKind = entity.AccountKindCliente
	u, err := newResolver(users).RegisterProfile(context.Background(), principal, in)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSuperadmin, u.Role)
}

func TestValidateProfile(t *testing.T) {
	cases := map[string]func(*dto.ProfileRequest){
		"nombre corto":     func(p *dto.ProfileRequest) { p.Nombre = "Ana" },
		"apellido largo":   func(p *dto.ProfileRequest) { p.ApellidoMaterno = "Abcdefghijklmnopqrstu" },
		"rut inválido":     func(p *dto.ProfileRequest) { p.RUT = "12.345.678-9" },
		"email sin arroba": func(p *dto.ProfileRequest) { p.Email = "camilamail.cl" },
		"email corto":      func(p *dto.ProfileRequest) { p.Email = "a@b.cl" },
		"tipo inválido":    func(p *dto.ProfileRequest) { p.AccountKind = "Admin" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := validProfile()
			mutate(&p)
			assert.ErrorIs(t, auth.ValidateProfile(p), domain.ErrInvalidInput)
		})
	}
	assert.NoError(t, auth.ValidateProfile(validProfile()))
}

func TestRegisterProfile_EmailDistintoDeSesion(t *testing.T) {
	principal := &entity.User{ID: "u1", Email: "otra@mail.cl", Role: entity.RoleClient}
	_, err := newResolver(memory.NewUserStore(principal)).RegisterProfile(context.Background(), principal, validProfile())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
