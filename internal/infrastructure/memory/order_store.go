package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

var (
	_ repository.OrderRepository     = (*OrderStore)(nil)
	_ repository.AnalyticsRepository = (*OrderStore)(nil)
)

// OrderStore pedidos en memoria. Now asigna createdAt como lo haría el servidor.
type OrderStore struct {
	mu     sync.RWMutex
	orders map[string]entity.Order
	Now    func() time.Time
	Err    error
}

// NewOrderStore crea el store con los pedidos dados (se copian tal cual).
func NewOrderStore(orders ...*entity.Order) *OrderStore {
	s := &OrderStore{orders: map[string]entity.Order{}, Now: time.Now}
	for _, o := range orders {
		s.orders[o.ID] = clone(*o)
	}
	return s
}

func (s *OrderStore) Create(_ context.Context, o *entity.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	o.ID = uuid.NewString()
	o.CreatedAt = s.Now()
	s.orders[o.ID] = clone(*o)
	return nil
}

func (s *OrderStore) GetByID(_ context.Context, id string) (*entity.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}
	o, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	o = clone(o)
	return &o, nil
}

func (s *OrderStore) UpdateStatus(_ context.Context, id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	o, ok := s.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	s.orders[id] = o
	return nil
}

func (s *OrderStore) ListByBuyer(_ context.Context, buyerID string) ([]*entity.Order, error) {
	return s.filter(func(o entity.Order) bool { return o.BuyerID == buyerID })
}

func (s *OrderStore) ListByOwner(_ context.Context, ownerID string) ([]*entity.Order, error) {
	return s.filter(func(o entity.Order) bool { return o.InvolvesOwner(ownerID) })
}

func (s *OrderStore) ListAll(_ context.Context) ([]*entity.Order, error) {
	return s.filter(func(entity.Order) bool { return true })
}

func (s *OrderStore) ListByStatus(_ context.Context, status string) ([]*entity.Order, error) {
	list, err := s.filter(func(o entity.Order) bool { return o.Status == status })
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, nil
}

func (s *OrderStore) ListLatest(ctx context.Context, limit int) ([]*entity.Order, error) {
	list, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (s *OrderStore) CountByStatus(ctx context.Context, status string) (int, error) {
	list, err := s.ListByStatus(ctx, status)
	return len(list), err
}

// GetSalesMetrics suma los pedidos entregados con createdAt en [start, end].
func (s *OrderStore) GetSalesMetrics(_ context.Context, start, end time.Time) (decimal.Decimal, int, error) {
	list, err := s.filter(func(o entity.Order) bool {
		return o.Status == entity.OrderStatusDelivered && !o.CreatedAt.Before(start) && !o.CreatedAt.After(end)
	})
	if err != nil {
		return decimal.Zero, 0, err
	}
	total := decimal.Zero
	for _, o := range list {
		total = total.Add(o.Total)
	}
	return total, len(list), nil
}

// filter devuelve copias ordenadas por createdAt descendente.
func (s *OrderStore) filter(keep func(entity.Order) bool) ([]*entity.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var out []*entity.Order
	for _, o := range s.orders {
		if keep(o) {
			c := clone(o)
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func clone(o entity.Order) entity.Order {
	o.Items = append([]entity.OrderItem(nil), o.Items...)
	o.OwnersInvolved = append([]string(nil), o.OwnersInvolved...)
	return o
}

// TxRunner ejecuta el callback directamente sobre el store; si fn falla no hay rollback
// porque las únicas escrituras son atómicas.
type TxRunner struct {
	Orders *OrderStore
}

// RunOrders implementa order.TxRunner.
func (r TxRunner) RunOrders(ctx context.Context, fn func(orders repository.OrderRepository) error) error {
	return fn(r.Orders)
}
