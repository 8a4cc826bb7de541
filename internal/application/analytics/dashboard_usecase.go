// Package analytics contiene los casos de uso de reportes de ventas y el dashboard del superadmin.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/application/order"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/ordering"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

const dashboardLatestOrders = 10 // pedidos en el widget "últimos pedidos"

// ProductCounter cuenta productos activos del catálogo.
type ProductCounter interface {
	CountActive(ctx context.Context) (int, error)
}

// DashboardUseCase KPIs del panel de administración.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	orders        repository.OrderRepository
	products      ProductCounter
	loc           *time.Location
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso. loc define el "mes en curso".
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, orders repository.OrderRepository, products ProductCounter, loc *time.Location) *DashboardUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &DashboardUseCase{analyticsRepo: analyticsRepo, orders: orders, products: products, loc: loc, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Cuatro consultas en paralelo:
//  1. CountByStatus(pending)    → PendingOrders
//  2. GetSalesMetrics(mes)      → MonthSales + MonthOrders
//  3. CountActive               → ActiveProducts
//  4. ListLatest(10)            → LatestOrders
func (uc *DashboardUseCase) GetSummary(ctx context.Context, viewer *entity.User) (*dto.DashboardSummaryDTO, error) {
	if viewer == nil || !entity.IsStaff(viewer.Role) {
		return nil, domain.ErrForbidden
	}
	now := uc.now().In(uc.loc)

	// Mes en curso: día 1 a las 00:00 – ahora
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, uc.loc)

	type countResult struct {
		n   int
		err error
	}
	type salesResult struct {
		total decimal.Decimal
		count int
		err   error
	}
	type latestResult struct {
		orders []*entity.Order
		err    error
	}

	pendingCh := make(chan countResult, 1)
	salesCh := make(chan salesResult, 1)
	activeCh := make(chan countResult, 1)
	latestCh := make(chan latestResult, 1)

	go func() {
		n, err := uc.orders.CountByStatus(ctx, entity.OrderStatusPending)
		pendingCh <- countResult{n, err}
	}()
	go func() {
		total, count, err := uc.analyticsRepo.GetSalesMetrics(ctx, monthStart, now)
		salesCh <- salesResult{total, count, err}
	}()
	go func() {
		n, err := uc.products.CountActive(ctx)
		activeCh <- countResult{n, err}
	}()
	go func() {
		list, err := uc.orders.ListLatest(ctx, dashboardLatestOrders)
		latestCh <- latestResult{list, err}
	}()

	pending := <-pendingCh
	sales := <-salesCh
	active := <-activeCh
	latest := <-latestCh

	if pending.err != nil {
		return nil, fmt.Errorf("dashboard: pedidos pendientes: %w", pending.err)
	}
	if sales.err != nil {
		return nil, fmt.Errorf("dashboard: ventas del mes: %w", sales.err)
	}
	if active.err != nil {
		return nil, fmt.Errorf("dashboard: productos activos: %w", active.err)
	}
	if latest.err != nil {
		return nil, fmt.Errorf("dashboard: últimos pedidos: %w", latest.err)
	}

	return &dto.DashboardSummaryDTO{
		PendingOrders:  pending.n,
		MonthSales:     sales.total,
		MonthOrders:    sales.count,
		ActiveProducts: active.n,
		LatestOrders:   order.ToResponses(ordering.ProjectAll(latest.orders, viewer), viewer),
		DateLabel:      monthLabel(now),
	}, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
