package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, owner_id, owner_email, category_id, category_name, name, description, ingredients,
	conditions, type, image_url, price, active, is_default, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	if _, err := r.q.Exec(ctx, query, productArgs(p)...); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return wrap("insert product", err)
	}
	return nil
}

// Upsert inserta o reemplaza el producto por ID; created_at se conserva en la actualización.
func (r *ProductRepo) Upsert(ctx context.Context, p *entity.Product) error {
	query := `INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (id) DO UPDATE SET
			owner_id = EXCLUDED.owner_id, owner_email = EXCLUDED.owner_email,
			category_id = EXCLUDED.category_id, category_name = EXCLUDED.category_name,
			name = EXCLUDED.name, description = EXCLUDED.description, ingredients = EXCLUDED.ingredients,
			conditions = EXCLUDED.conditions, type = EXCLUDED.type, image_url = EXCLUDED.image_url,
			price = EXCLUDED.price, active = EXCLUDED.active, is_default = EXCLUDED.is_default,
			updated_at = EXCLUDED.updated_at`
	if _, err := r.q.Exec(ctx, query, productArgs(p)...); err != nil {
		return wrap("upsert product", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrap("get product", err)
	}
	return p, nil
}

// Update actualiza los campos editables del producto.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET category_id = $2, category_name = $3, name = $4, description = $5,
		       ingredients = $6, conditions = $7, type = $8, image_url = $9, price = $10, active = $11, updated_at = $12
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.CategoryID, p.CategoryName, p.Name, p.Description, p.Ingredients, p.Conditions,
		p.Type, p.ImageURL, p.Price, p.Active, p.UpdatedAt,
	)
	if err != nil {
		return wrap("update product", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		return wrap("delete product", err)
	}
	return nil
}

// ListActive productos activos; categoryID vacío = todas las categorías.
func (r *ProductRepo) ListActive(ctx context.Context, categoryID string) ([]*entity.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products
		WHERE active AND ($1 = '' OR category_id = $1) ORDER BY category_name, name`, categoryID)
}

// ListByOwner productos de un dueño, incluidos los inactivos.
func (r *ProductRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products WHERE owner_id = $1 ORDER BY category_name, name`, ownerID)
}

// CountActive cuenta productos activos.
func (r *ProductRepo) CountActive(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE active`).Scan(&n); err != nil {
		return 0, wrap("count products", err)
	}
	return n, nil
}

func (r *ProductRepo) list(ctx context.Context, query string, arg string) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, wrap("list products", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, wrap("scan product", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func productArgs(p *entity.Product) []any {
	return []any{
		p.ID, p.OwnerID, p.OwnerEmail, p.CategoryID, p.CategoryName, p.Name, p.Description, p.Ingredients,
		p.Conditions, p.Type, p.ImageURL, p.Price, p.Active, p.IsDefault, p.CreatedAt, p.UpdatedAt,
	}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.OwnerID, &p.OwnerEmail, &p.CategoryID, &p.CategoryName, &p.Name, &p.Description, &p.Ingredients,
		&p.Conditions, &p.Type, &p.ImageURL, &p.Price, &p.Active, &p.IsDefault, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
