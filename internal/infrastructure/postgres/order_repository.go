package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, buyer_id, buyer_display_name, buyer_email, subtotal, tax_amount, tax_rate, total,
	owners_involved, status, created_at`

// OrderRepo implementación de OrderRepository sobre PostgreSQL (tablas orders y order_items).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Para Create se espera una tx (ver TxRunner).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create inserta la cabecera (id y created_at los asigna el servidor) y los ítems en un batch.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (buyer_id, buyer_display_name, buyer_email, subtotal, tax_amount, tax_rate, total,
		                    owners_involved, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		o.BuyerID, o.BuyerDisplayName, o.BuyerEmail, o.Subtotal, o.TaxAmount, o.TaxRate, o.Total,
		o.OwnersInvolved, o.Status,
	).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return wrap("insert order", err)
	}

	batch := &pgx.Batch{}
	for i, it := range o.Items {
		batch.Queue(`
			INSERT INTO order_items (order_id, position, product_id, owner_id, category_id, category_name,
			                         name, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			o.ID, i, it.ProductID, it.OwnerID, it.CategoryID, it.CategoryName, it.Name, it.Quantity, it.UnitPrice,
		)
	}
	br := r.q.SendBatch(ctx, batch)
	for range o.Items {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return wrap("insert order item", err)
		}
	}
	if err := br.Close(); err != nil {
		return wrap("insert order items", err)
	}
	return nil
}

// GetByID obtiene un pedido con sus ítems.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrap("get order", err)
	}
	if err := r.loadItems(ctx, []*entity.Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// UpdateStatus escribe solo el estado.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return wrap("update order status", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OrderRepo) ListByBuyer(ctx context.Context, buyerID string) ([]*entity.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE buyer_id = $1 ORDER BY created_at DESC`, buyerID)
}

// ListByOwner usa el índice GIN sobre owners_involved.
func (r *OrderRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE $1 = ANY(owners_involved) ORDER BY created_at DESC`, ownerID)
}

func (r *OrderRepo) ListAll(ctx context.Context) ([]*entity.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
}

// ListByStatus en orden cronológico: el ranking del reporte conserva ese orden en los empates.
func (r *OrderRepo) ListByStatus(ctx context.Context, status string) ([]*entity.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE status = $1 ORDER BY created_at, id`, status)
}

func (r *OrderRepo) ListLatest(ctx context.Context, limit int) ([]*entity.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC LIMIT $1`, limit)
}

func (r *OrderRepo) CountByStatus(ctx context.Context, status string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE status = $1`, status).Scan(&n); err != nil {
		return 0, wrap("count orders", err)
	}
	return n, nil
}

func (r *OrderRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap("list orders", err)
	}
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, wrap("scan order", err)
		}
		list = append(list, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, wrap("list orders", err)
	}
	if err := r.loadItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// loadItems carga los ítems de todos los pedidos con una sola consulta.
func (r *OrderRepo) loadItems(ctx context.Context, orders []*entity.Order) error {
	if len(orders) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Order, len(orders))
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}
	rows, err := r.q.Query(ctx, `
		SELECT order_id, product_id, owner_id, category_id, category_name, name, quantity, unit_price
		FROM order_items WHERE order_id = ANY($1) ORDER BY order_id, position`, ids)
	if err != nil {
		return wrap("list order items", err)
	}
	defer rows.Close()
	for rows.Next() {
		var orderID string
		var it entity.OrderItem
		if err := rows.Scan(&orderID, &it.ProductID, &it.OwnerID, &it.CategoryID, &it.CategoryName,
			&it.Name, &it.Quantity, &it.UnitPrice); err != nil {
			return wrap("scan order item", err)
		}
		if o := byID[orderID]; o != nil {
			o.Items = append(o.Items, it)
		}
	}
	if err := rows.Err(); err != nil {
		return wrap("list order items", err)
	}
	return nil
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(
		&o.ID, &o.BuyerID, &o.BuyerDisplayName, &o.BuyerEmail, &o.Subtotal, &o.TaxAmount, &o.TaxRate, &o.Total,
		&o.OwnersInvolved, &o.Status, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
