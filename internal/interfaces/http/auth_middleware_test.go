package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pedidos-api/internal/application/auth"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/pedidos-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/pedidos-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "pedidos-api-test"
	testExpMin    = 60
)

// seedUsers perfiles conocidos por el resolver; el rol sale de aquí, no del token.
func seedUsers() *memory.UserStore {
	return memory.NewUserStore(
		&entity.User{ID: "u-admin", Email: "admin@casino.cl", Role: entity.RoleAdmin, AccountKind: entity.AccountKindCliente},
		&entity.User{ID: "u-company", Email: "cocina@casino.cl", Role: entity.RoleCompany, AccountKind: entity.AccountKindEmpresa},
		&entity.User{ID: "u-client", Email: "ana@mail.cl", Role: entity.RoleClient, AccountKind: entity.AccountKindCliente},
	)
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para validar el JWT y resolver el perfil
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(users *memory.UserStore, allowedRoles ...string) *fiber.App {
	resolver := auth.NewResolver(users, "", zerolog.Nop())
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret, testIssuer, resolver),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c),
				"id":   apphttp.GetPrincipal(c).ID,
			})
		},
	)
	return app
}

// tokenFor genera un JWT para el uid indicado.
func tokenFor(t *testing.T, uid, email string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testIssuer, pkgjwt.Identity{UID: uid, Email: email}, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp(seedUsers(), entity.RoleAdmin)
	resp := doRequest(t, app, tokenFor(t, "u-admin", "admin@casino.cl"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, entity.RoleAdmin, body["role"])
}

func TestRequireRole_CompanyAccedeRutaMultiRol(t *testing.T) {
	app := buildTestApp(seedUsers(), entity.RoleAdmin, entity.RoleCompany)
	resp := doRequest(t, app, tokenFor(t, "u-company", "cocina@casino.cl"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_ClientBloqueadoEnRutaAdmin(t *testing.T) {
	app := buildTestApp(seedUsers(), entity.RoleAdmin)
	resp := doRequest(t, app, tokenFor(t, "u-client", "ana@mail.cl"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

// Un uid sin perfil entra como client/Cliente: no alcanza rutas de staff.
func TestRequireRole_PrimerIngresoEsClient(t *testing.T) {
	users := seedUsers()
	app := buildTestApp(users, entity.RoleClient)
	resp := doRequest(t, app, tokenFor(t, "u-nuevo", "nuevo@mail.cl"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	u, err := users.GetByID(context.Background(), "u-nuevo")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, entity.RoleClient, u.Role)
}

func TestRequireRole_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp(seedUsers(), entity.RoleAdmin)
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestRequireRole_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(seedUsers(), entity.RoleAdmin)
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_FormatoInvalido(t *testing.T) {
	app := buildTestApp(seedUsers(), entity.RoleAdmin)
	resp := doRequest(t, app, "Token abc")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestAuthMiddleware_EmisorDistinto(t *testing.T) {
	app := buildTestApp(seedUsers(), entity.RoleAdmin)
	tok, err := pkgjwt.Generate(testJWTSecret, "otro-idp", pkgjwt.Identity{UID: "u-admin"}, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_AlmacenCaido_Retorna503(t *testing.T) {
	users := seedUsers()
	users.Err = domain.ErrStoreUnavailable
	app := buildTestApp(users, entity.RoleAdmin)

	resp := doRequest(t, app, tokenFor(t, "u-admin", "admin@casino.cl"))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware: el principal sale del perfil almacenado
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_PrincipalDesdePerfil(t *testing.T) {
	resolver := auth.NewResolver(seedUsers(), "", zerolog.Nop())
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret, testIssuer, resolver), func(c *fiber.Ctx) error {
		p := apphttp.GetPrincipal(c)
		return c.JSON(fiber.Map{"id": p.ID, "email": p.Email, "role": p.Role})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenFor(t, "u-company", "cocina@casino.cl"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "u-company", body["id"])
	assert.Equal(t, entity.RoleCompany, body["role"])
}

func TestAuthMiddleware_EmailDeOtroPerfil_Retorna409(t *testing.T) {
	app := buildTestApp(seedUsers(), entity.RoleClient)

	// uid nuevo con el email de u-client: el perfil no se puede crear
	resp := doRequest(t, app, tokenFor(t, "u-duplicado", "ana@mail.cl"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "DUPLICATE")
}

// nilResolver simula un resolver que no encuentra perfil ni informa error.
type nilResolver struct{}

func (nilResolver) Resolve(context.Context, pkgjwt.Identity) (*entity.User, error) { return nil, nil }

func TestAuthMiddleware_SinPrincipal_NoLlegaAlHandler(t *testing.T) {
	app := fiber.New()
	reached := false
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret, testIssuer, nilResolver{}), func(c *fiber.Ctx) error {
		reached = true
		return c.JSON(fiber.Map{"id": apphttp.GetPrincipal(c).ID})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenFor(t, "u-x", "x@mail.cl"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, reached)
}
