package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pedidos-api/internal/application/admin"
	appanalytics "github.com/jhoicas/pedidos-api/internal/application/analytics"
	"github.com/jhoicas/pedidos-api/internal/application/auth"
	"github.com/jhoicas/pedidos-api/internal/application/cart"
	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/application/order"
	"github.com/jhoicas/pedidos-api/internal/application/usecase"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/pedidos-api/internal/interfaces/http"
)

type apiFixture struct {
	app    *fiber.App
	orders *memory.OrderStore
	carts  *memory.CartStore
}

// newAPI arma el router completo sobre stores en memoria.
func newAPI(t *testing.T) apiFixture {
	t.Helper()
	users := memory.NewUserStore(
		&entity.User{ID: "u-client", Email: "ana@mail.cl", DisplayName: "Ana", Role: entity.RoleClient, AccountKind: entity.AccountKindCliente},
		&entity.User{ID: "kitchen", Email: "cocina@casino.cl", Role: entity.RoleCompany, AccountKind: entity.AccountKindEmpresa},
		&entity.User{ID: "bakery", Email: "panaderia@casino.cl", Role: entity.RoleCompany, AccountKind: entity.AccountKindEmpresa},
		&entity.User{ID: "u-admin", Email: "admin@casino.cl", Role: entity.RoleAdmin, AccountKind: entity.AccountKindCliente},
	)
	products := memory.NewProductStore(
		&entity.Product{ID: "soup", OwnerID: "kitchen", Name: "Sopa", CategoryID: "almuerzo", Price: decimal.NewFromInt(1000), Active: true},
		&entity.Product{ID: "bread", OwnerID: "bakery", Name: "Pan", CategoryID: "snack", Price: decimal.NewFromInt(500), Active: true},
	)
	categories := memory.NewCategoryStore()
	carts := memory.NewCartStore()
	orders := memory.NewOrderStore()
	log := zerolog.Nop()

	cartUC := cart.NewUseCase(carts, products, log)
	orderUC := order.NewUseCase(orders, memory.TxRunner{Orders: orders}, cartUC, decimal.RequireFromString("0.19"), log)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Resolver:    auth.NewResolver(users, "", log),
		ProductUC:   usecase.NewProductUseCase(products, categories, log),
		CartUC:      cartUC,
		OrderUC:     orderUC,
		ReportUC:    appanalytics.NewReportUseCase(orders, users, categories, nil, nil, log),
		DashboardUC: appanalytics.NewDashboardUseCase(orders, orders, products, nil),
		AdminGuard:  admin.NewGuard(users, log),
		JWTSecret:   testJWTSecret,
		JWTIssuer:   testIssuer,
	})
	return apiFixture{app: app, orders: orders, carts: carts}
}

func (f apiFixture) do(t *testing.T, method, path, uid, body string) *http.Response {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if uid != "" {
		req.Header.Set("Authorization", tokenFor(t, uid, ""))
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// createOrder llena el carrito del cliente (2 sopas y 1 pan) y lo envía.
func (f apiFixture) createOrder(t *testing.T) dto.OrderResponse {
	t.Helper()
	resp := f.do(t, http.MethodPost, "/api/cart/items", "u-client", `{"item_id":"soup","quantity":2}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	resp = f.do(t, http.MethodPost, "/api/cart/items", "u-client", `{"item_id":"bread","quantity":1}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodPost, "/api/orders", "u-client", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[dto.OrderResponse](t, resp)
}

func TestOrderHandler_CreateDesdeCarrito(t *testing.T) {
	f := newAPI(t)
	out := f.createOrder(t)

	require.NotNil(t, out.Total)
	assert.True(t, out.Subtotal.Equal(decimal.NewFromInt(2500)))
	assert.True(t, out.TaxAmount.Equal(decimal.NewFromInt(475)))
	assert.True(t, out.Total.Equal(decimal.NewFromInt(2975)))
	assert.Equal(t, []string{"kitchen", "bakery"}, out.OwnersInvolved)
	assert.Equal(t, entity.OrderStatusPending, out.Status)

	lines, err := f.carts.ListLines(context.Background(), "u-client")
	require.NoError(t, err)
	assert.Empty(t, lines, "el carrito se vacía después de crear el pedido")
}

func TestOrderHandler_CreateCarritoVacio(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodPost, "/api/orders", "u-client", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestOrderHandler_CreateEmpresaProhibido(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodPost, "/api/orders", "kitchen", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestOrderHandler_VistaEmpresaAcotada(t *testing.T) {
	f := newAPI(t)
	created := f.createOrder(t)

	resp := f.do(t, http.MethodGet, "/api/orders/"+created.ID, "bakery", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	defer resp.Body.Close()
	var raw map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	assert.Equal(t, true, raw["scoped"])
	assert.NotContains(t, raw, "total", "la empresa no ve el total del pedido")
	items := raw["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "bread", items[0].(map[string]any)["product_id"])
	assert.Equal(t, "500", raw["viewer_total"])
}

func TestOrderHandler_ListPorRol(t *testing.T) {
	f := newAPI(t)
	f.createOrder(t)

	for uid, want := range map[string]int{"u-client": 1, "kitchen": 1, "u-admin": 1} {
		resp := f.do(t, http.MethodGet, "/api/orders", uid, "")
		require.Equal(t, http.StatusOK, resp.StatusCode, uid)
		list := decode[[]dto.OrderResponse](t, resp)
		assert.Len(t, list, want, uid)
	}

	// un cliente sin pedidos no ve los ajenos
	resp := f.do(t, http.MethodGet, "/api/orders", "u-otro", "")
	list := decode[[]dto.OrderResponse](t, resp)
	assert.Empty(t, list)
}

func TestOrderHandler_GetAjenoEs404(t *testing.T) {
	f := newAPI(t)
	created := f.createOrder(t)

	resp := f.do(t, http.MethodGet, "/api/orders/"+created.ID, "u-otro", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp2 := f.do(t, http.MethodGet, "/api/orders/no-existe", "u-admin", "")
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp2.StatusCode)
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	f := newAPI(t)
	created := f.createOrder(t)
	path := "/api/orders/" + created.ID + "/status"

	// el cliente no cambia estados
	resp := f.do(t, http.MethodPatch, path, "u-client", `{"status":"cancelled"}`)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// salto inválido pending -> delivered
	resp = f.do(t, http.MethodPatch, path, "kitchen", `{"status":"delivered"}`)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = f.do(t, http.MethodPatch, path, "kitchen", `{"status":"in_process"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.OrderResponse](t, resp)
	assert.Equal(t, entity.OrderStatusInProcess, out.Status)

	resp = f.do(t, http.MethodPatch, path, "u-admin", `{"status":"delivered"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// terminal
	resp = f.do(t, http.MethodPatch, path, "u-admin", `{"status":"pending"}`)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	stored, err := f.orders.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDelivered, stored.Status)
}

func TestOrderHandler_UpdateStatusBodyInvalido(t *testing.T) {
	f := newAPI(t)
	created := f.createOrder(t)

	resp := f.do(t, http.MethodPatch, "/api/orders/"+created.ID+"/status", "u-admin", `{}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_ReportesSoloStaff(t *testing.T) {
	f := newAPI(t)

	resp := f.do(t, http.MethodGet, "/api/reports/sales", "kitchen", "")
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/reports/sales?channel=all", "u-admin", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	report := decode[dto.SalesReportDTO](t, resp)
	assert.Equal(t, "all", report.Channel)

	resp = f.do(t, http.MethodGet, "/api/reports/sales?channel=otro", "u-admin", "")
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_CatalogoPublico(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, "/api/catalog", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]dto.ProductResponse](t, resp)
	assert.Len(t, list, 2)
}
