package ordering_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/ordering"
)

var iva = decimal.RequireFromString("0.19")

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func buyer() *entity.User {
	return &entity.User{ID: "buyer-1", Email: "ana@casino.cl", Nombre: "Ana", ApellidoPaterno: "Rojas", Role: entity.RoleClient}
}

func user(id, role string) *entity.User {
	return &entity.User{ID: id, Role: role}
}

// orderAB pedido con ítems de dos empresas (A y B).
func orderAB() *entity.Order {
	items := []entity.OrderItem{
		{ProductID: "p1", OwnerID: "A", Name: "Sandwiches", Quantity: 2, UnitPrice: d("4500")},
		{ProductID: "p2", OwnerID: "B", Name: "Brownies", Quantity: 3, UnitPrice: d("1600")},
		{ProductID: "p3", OwnerID: "A", Name: "Jugos", Quantity: 1, UnitPrice: d("3000")},
	}
	sub, tax, total := ordering.Totals(items, iva)
	return &entity.Order{
		ID: "o-1", BuyerID: "buyer-1", Items: items,
		Subtotal: sub, TaxAmount: tax, TaxRate: iva, Total: total,
		OwnersInvolved: ordering.OwnersOf(items),
		Status:         entity.OrderStatusPending,
	}
}

// ── Build ───────────────────────────────────────────────────────────────────

func TestBuild_EscenarioSopaPan(t *testing.T) {
	lines := []entity.CartLine{
		{ItemID: "soup", Name: "Sopa", Quantity: 2, PriceSnapshot: d("1000"), OwnerID: "kitchen"},
		{ItemID: "bread", Name: "Pan", Quantity: 1, PriceSnapshot: d("500"), OwnerID: "bakery"},
	}
	o, err := ordering.Build(lines, buyer(), iva)
	require.NoError(t, err)

	assert.True(t, o.Subtotal.Equal(d("2500")))
	assert.True(t, o.TaxAmount.Equal(d("475")))
	assert.True(t, o.Total.Equal(d("2975")))
	assert.Contains(t, o.OwnersInvolved, "bakery")
	assert.Equal(t, entity.OrderStatusPending, o.Status)
	assert.Equal(t, "Ana Rojas", o.BuyerDisplayName)
	assert.True(t, o.CreatedAt.IsZero(), "createdAt lo asigna el servidor")
}

func TestBuild_TotalesConsistentes(t *testing.T) {
	carts := [][]entity.CartLine{
		{{ItemID: "a", Quantity: 1, PriceSnapshot: d("1"), OwnerID: "x"}},
		{{ItemID: "a", Quantity: 3, PriceSnapshot: d("1333"), OwnerID: "x"}, {ItemID: "b", Quantity: 7, PriceSnapshot: d("99"), OwnerID: "y"}},
		{{ItemID: "a", Quantity: 1, PriceSnapshot: d("0"), OwnerID: "x"}},
		{{ItemID: "a", Quantity: 11, PriceSnapshot: d("5555"), OwnerID: "x"}, {ItemID: "b", Quantity: 1, PriceSnapshot: d("3"), OwnerID: "x"}},
	}
	for _, lines := range carts {
		o, err := ordering.Build(lines, buyer(), iva)
		require.NoError(t, err)
		assert.True(t, o.Total.Equal(o.Subtotal.Add(o.TaxAmount)))
		assert.True(t, o.TaxAmount.Equal(o.Subtotal.Mul(iva).Round(0)))
		assert.True(t, o.Subtotal.Equal(ordering.SumItems(o.Items)))
	}
}

func TestBuild_PreciosCongelados(t *testing.T) {
	lines := []entity.CartLine{{ItemID: "a", Quantity: 1, PriceSnapshot: d("1000"), OwnerID: "x"}}
	o, err := ordering.Build(lines, buyer(), iva)
	require.NoError(t, err)

	lines[0].PriceSnapshot = d("9999")
	assert.True(t, o.Items[0].UnitPrice.Equal(d("1000")))
}

func TestBuild_Errores(t *testing.T) {
	line := entity.CartLine{ItemID: "a", Quantity: 1, PriceSnapshot: d("10"), OwnerID: "x"}

	_, err := ordering.Build([]entity.CartLine{line}, nil, iva)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = ordering.Build(nil, buyer(), iva)
	assert.ErrorIs(t, err, domain.ErrEmptyCart)

	_, err = ordering.Build([]entity.CartLine{line}, user("c-1", entity.RoleCompany), iva)
	assert.ErrorIs(t, err, domain.ErrForbidden, "una empresa nunca crea pedidos")

	sinDueno := line
	sinDueno.OwnerID = ""
	_, err = ordering.Build([]entity.CartLine{line, sinDueno}, buyer(), iva)
	assert.ErrorIs(t, err, domain.ErrUnresolvedOwner)

	cero := line
	cero.Quantity = 0
	_, err = ordering.Build([]entity.CartLine{cero}, buyer(), iva)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOwnersOf_Distintos(t *testing.T) {
	o := orderAB()
	assert.Equal(t, []string{"A", "B"}, o.OwnersInvolved)
	assert.Empty(t, ordering.OwnersOf(nil))
}

// ── Máquina de estados ──────────────────────────────────────────────────────

var allStatuses = []string{
	entity.OrderStatusPending, entity.OrderStatusInProcess,
	entity.OrderStatusDelivered, entity.OrderStatusCancelled,
}

func TestCanTransition_TerminalesNuncaSalen(t *testing.T) {
	for _, role := range []string{entity.RoleClient, entity.RoleCompany, entity.RoleAdmin, entity.RoleSuperadmin} {
		for _, from := range []string{entity.OrderStatusDelivered, entity.OrderStatusCancelled} {
			for _, to := range allStatuses {
				assert.False(t, ordering.CanTransition(role, []string{"A"}, "A", from, to), "%s: %s -> %s", role, from, to)
			}
		}
	}
}

func TestCanTransition_DesdePendiente(t *testing.T) {
	for _, role := range []string{entity.RoleCompany, entity.RoleAdmin, entity.RoleSuperadmin} {
		got := map[string]bool{}
		for _, to := range allStatuses {
			got[to] = ordering.CanTransition(role, []string{"A"}, "A", entity.OrderStatusPending, to)
		}
		assert.Equal(t, map[string]bool{
			entity.OrderStatusPending:   false,
			entity.OrderStatusInProcess: true,
			entity.OrderStatusDelivered: false,
			entity.OrderStatusCancelled: true,
		}, got, role)
	}
}

func TestCanTransition_Roles(t *testing.T) {
	owners := []string{"A", "B"}

	assert.False(t, ordering.CanTransition(entity.RoleClient, owners, "buyer-1", entity.OrderStatusPending, entity.OrderStatusCancelled))
	assert.False(t, ordering.CanTransition(entity.RoleCompany, owners, "C", entity.OrderStatusPending, entity.OrderStatusInProcess), "empresa ajena")
	assert.True(t, ordering.CanTransition(entity.RoleCompany, owners, "B", entity.OrderStatusInProcess, entity.OrderStatusDelivered))
	assert.False(t, ordering.CanTransition(entity.RoleCompany, owners, "A", entity.OrderStatusInProcess, entity.OrderStatusPending))
	assert.True(t, ordering.CanTransition(entity.RoleAdmin, nil, "adm", entity.OrderStatusInProcess, entity.OrderStatusPending))
	assert.True(t, ordering.CanTransition(entity.RoleSuperadmin, nil, "sa", entity.OrderStatusInProcess, entity.OrderStatusPending))
	assert.False(t, ordering.CanTransition(entity.RoleAdmin, nil, "adm", entity.OrderStatusPending, "enviado"))
}

func TestTransition_Errores(t *testing.T) {
	o := orderAB()

	_, err := ordering.Transition(o, buyer(), entity.OrderStatusCancelled)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = ordering.Transition(o, user("C", entity.RoleCompany), entity.OrderStatusInProcess)
	assert.ErrorIs(t, err, domain.ErrNotVisible)

	_, err = ordering.Transition(o, user("A", entity.RoleCompany), entity.OrderStatusPending)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = ordering.Transition(o, user("A", entity.RoleCompany), entity.OrderStatusDelivered)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = ordering.Transition(o, user("adm", entity.RoleAdmin), "perdido")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	o.Status = entity.OrderStatusDelivered
	_, err = ordering.Transition(o, user("sa", entity.RoleSuperadmin), entity.OrderStatusPending)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestTransition_PedidoNil(t *testing.T) {
	_, err := ordering.Transition(nil, user("sa", entity.RoleSuperadmin), entity.OrderStatusCancelled)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransition_NoMutaOriginal(t *testing.T) {
	o := orderAB()
	next, err := ordering.Transition(o, user("A", entity.RoleCompany), entity.OrderStatusInProcess)
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusInProcess, next.Status)
	assert.Equal(t, entity.OrderStatusPending, o.Status)
	assert.True(t, next.Total.Equal(o.Total))
	assert.Equal(t, o.Items, next.Items)
}

func TestAllowedTargets(t *testing.T) {
	o := orderAB()
	o.Status = entity.OrderStatusInProcess
	assert.Equal(t, []string{entity.OrderStatusDelivered, entity.OrderStatusCancelled},
		ordering.AllowedTargets(o, user("A", entity.RoleCompany)))
	assert.Equal(t, []string{entity.OrderStatusPending, entity.OrderStatusDelivered, entity.OrderStatusCancelled},
		ordering.AllowedTargets(o, user("adm", entity.RoleAdmin)))
	assert.Empty(t, ordering.AllowedTargets(o, buyer()))
}

// ── Proyección ──────────────────────────────────────────────────────────────

func TestProject_EmpresaVeSoloSusItems(t *testing.T) {
	o := orderAB()
	p, err := ordering.Project(o, user("A", entity.RoleCompany))
	require.NoError(t, err)

	require.Len(t, p.Order.Items, 2)
	for _, it := range p.Order.Items {
		assert.Equal(t, "A", it.OwnerID)
	}
	assert.True(t, p.Scoped)
	assert.True(t, p.ViewerTotal.Equal(d("12000")))
	assert.True(t, p.ViewerTotal.LessThan(o.Total))
	assert.Equal(t, []string{"A"}, p.Order.OwnersInvolved)

	// el pedido original queda intacto
	assert.Len(t, o.Items, 3)
	assert.Equal(t, []string{"A", "B"}, o.OwnersInvolved)
}

func TestProject_EmpresaSinItemsExcluida(t *testing.T) {
	_, err := ordering.Project(orderAB(), user("C", entity.RoleCompany))
	assert.ErrorIs(t, err, domain.ErrNotVisible)

	list := ordering.ProjectAll([]*entity.Order{orderAB(), orderAB()}, user("C", entity.RoleCompany))
	assert.Empty(t, list)
}

func TestProject_Cliente(t *testing.T) {
	o := orderAB()
	p, err := ordering.Project(o, buyer())
	require.NoError(t, err)
	assert.False(t, p.Scoped)
	assert.Len(t, p.Order.Items, 3)
	assert.True(t, p.ViewerTotal.Equal(o.Total))

	_, err = ordering.Project(o, user("otro", entity.RoleClient))
	assert.ErrorIs(t, err, domain.ErrNotVisible)
	assert.ErrorIs(t, err, domain.ErrNotFound, "no visible se trata como ausencia")
}

func TestProject_Admin(t *testing.T) {
	o := orderAB()
	for _, role := range []string{entity.RoleAdmin, entity.RoleSuperadmin} {
		p, err := ordering.Project(o, user("x", role))
		require.NoError(t, err)
		assert.Len(t, p.Order.Items, 3)
		assert.True(t, p.ViewerTotal.Equal(o.Total))
		assert.True(t, p.Order.Total.Equal(o.Total))
	}
}

func TestProject_Idempotente(t *testing.T) {
	o := orderAB()
	v := user("B", entity.RoleCompany)
	p1, err := ordering.Project(o, v)
	require.NoError(t, err)
	p2, err := ordering.Project(o, v)
	require.NoError(t, err)
	assert.Equal(t, p1, p2)
}
