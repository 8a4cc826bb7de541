package admin_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pedidos-api/internal/application/admin"
	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/infrastructure/memory"
)

func setup() (*admin.Guard, *memory.UserStore) {
	users := memory.NewUserStore(
		&entity.User{ID: "superA", Email: "sa@casino.cl", Role: entity.RoleSuperadmin},
		&entity.User{ID: "userB", Email: "b@mail.cl", Role: entity.RoleClient, AccountKind: entity.AccountKindCliente},
		&entity.User{ID: "adminC", Email: "c@mail.cl", Role: entity.RoleAdmin},
	)
	return admin.NewGuard(users, zerolog.Nop()), users
}

func roleOf(t *testing.T, users *memory.UserStore, id string) string {
	t.Helper()
	u, err := users.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, u)
	return u.Role
}

func TestSetRole_SegundoSuperadminRechazado(t *testing.T) {
	g, users := setup()
	_, err := g.SetRole(context.Background(), "superA", "userB", entity.RoleSuperadmin)
	assert.ErrorIs(t, err, domain.ErrSingleSuperadmin)
	assert.Equal(t, entity.RoleClient, roleOf(t, users, "userB"))
	assert.Equal(t, entity.RoleSuperadmin, roleOf(t, users, "superA"))
}

func TestSetRole_NoSuperadminDenegadoAntesDeEscribir(t *testing.T) {
	g, users := setup()
	_, err := g.SetRole(context.Background(), "adminC", "userB", entity.RoleCompany)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, entity.RoleClient, roleOf(t, users, "userB"))

	_, err = g.SetRole(context.Background(), "no-existe", "userB", entity.RoleCompany)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = g.DeleteUser(context.Background(), "userB", "adminC")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = g.ListUsers(context.Background(), "adminC")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSetRole_AutoDegradacion(t *testing.T) {
	g, users := setup()
	_, err := g.SetRole(context.Background(), "superA", "superA", entity.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrSelfDemotion)
	assert.Equal(t, entity.RoleSuperadmin, roleOf(t, users, "superA"))
}

func TestSetRole_Exito(t *testing.T) {
	g, users := setup()
	resp, err := g.SetRole(context.Background(), "superA", "userB", entity.RoleCompany)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCompany, resp.Role)
	assert.Equal(t, entity.RoleCompany, roleOf(t, users, "userB"))

	_, err = g.SetRole(context.Background(), "superA", "userB", "root")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = g.SetRole(context.Background(), "superA", "ghost", entity.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestDeleteUser(t *testing.T) {
	g, users := setup()
	ctx := context.Background()

	err := g.DeleteUser(ctx, "superA", "superA")
	assert.ErrorIs(t, err, domain.ErrSelfDeletion)

	require.NoError(t, g.DeleteUser(ctx, "superA", "userB"))
	u, err := users.GetByID(ctx, "userB")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestUpdateUser_PerfilYRol(t *testing.T) {
	g, users := setup()
	ctx := context.Background()

	resp, err := g.UpdateUser(ctx, "superA", "userB", dto.UpdateUserRequest{
		Nombre: "Bruno", RUT: "11.111.111-1", AccountKind: entity.AccountKindEmpresa, Role: entity.RoleCompany,
	})
	require.NoError(t, err)
	assert.Equal(t, "Bruno", resp.Nombre)
	assert.Equal(t, "111111111", resp.RUT)
	assert.Equal(t, entity.RoleCompany, roleOf(t, users, "userB"))

	_, err = g.UpdateUser(ctx, "superA", "userB", dto.UpdateUserRequest{Nombre: "Otro", Role: entity.RoleSuperadmin})
	assert.ErrorIs(t, err, domain.ErrSingleSuperadmin)
	u, _ := users.GetByID(ctx, "userB")
	assert.Equal(t, "Bruno", u.Nombre, "nada se escribe si el rol es inválido")
}

func TestListUsers(t *testing.T) {
	g, _ := setup()
	list, err := g.ListUsers(context.Background(), "superA")
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

// rejectingStore rechaza la escritura combinada como lo haría el índice de superadmin único.
type rejectingStore struct {
	*memory.UserStore
	err error
}

func (s rejectingStore) UpdateWithRole(context.Context, *entity.User) error { return s.err }

func TestUpdateUser_RolRechazadoNoDejaPerfilAMedias(t *testing.T) {
	_, users := setup()
	for _, failure := range []error{domain.ErrSingleSuperadmin, domain.ErrStoreUnavailable} {
		g := admin.NewGuard(rejectingStore{UserStore: users, err: failure}, zerolog.Nop())

		_, err := g.UpdateUser(context.Background(), "superA", "userB", dto.UpdateUserRequest{
			Nombre: "Bruno", Role: entity.RoleAdmin,
		})
		assert.ErrorIs(t, err, failure)

		u, err := users.GetByID(context.Background(), "userB")
		require.NoError(t, err)
		assert.Empty(t, u.Nombre, "el perfil no cambia si la escritura falla")
		assert.Equal(t, entity.RoleClient, u.Role)
	}
}

func TestUpdateUser_ValidaEtiquetas(t *testing.T) {
	g, _ := setup()
	cases := map[string]dto.UpdateUserRequest{
		"rut inválido":  {RUT: "12.345.678-9"},
		"nombre corto":  {Nombre: "Bo"},
		"tipo inválido": {AccountKind: "Admin"},
		"rol inválido":  {Role: "root"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := g.UpdateUser(context.Background(), "superA", "userB", in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}
