// Package sqlite almacén local de carritos sobre SQLite (modernc, sin cgo).
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
	"github.com/jhoicas/pedidos-api/internal/infrastructure/sqlite/migrations"
)

var _ repository.CartRepository = (*CartStore)(nil)

// CartStore persiste las líneas de carrito por principal. Las líneas se listan en orden de inserción.
type CartStore struct {
	db  *sql.DB
	now func() time.Time
}

func toMillis(t time.Time) int64 { return t.UTC().UnixMilli() }

func fromMillis(v int64) time.Time { return time.UnixMilli(v).UTC() }

// Open abre (o crea) la base en path y aplica las migraciones embebidas.
func Open(path string) (*CartStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("cart store: path requerido")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := migrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &CartStore{db: db, now: time.Now}, nil
}

func migrateUp(db *sql.DB) error {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("migrations source: %w", err)
	}
	drv, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("migrations driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", drv)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// Close cierra la base.
func (s *CartStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ping verifica que la base responda (health check).
func (s *CartStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

const lineColumns = `principal_id, item_id, name, quantity, price_snapshot, owner_id, category_id, category_name, updated_at`

func (s *CartStore) ListLines(ctx context.Context, principalID string) ([]entity.CartLine, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+lineColumns+` FROM cart_lines WHERE principal_id = ? ORDER BY position`, principalID)
	if err != nil {
		return nil, unavailable("list cart lines", err)
	}
	defer rows.Close()
	var lines []entity.CartLine
	for rows.Next() {
		l, err := scanLine(rows)
		if err != nil {
			return nil, err
		}
		lines = append(lines, *l)
	}
	return lines, rows.Err()
}

func (s *CartStore) GetLine(ctx context.Context, principalID, itemID string) (*entity.CartLine, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+lineColumns+` FROM cart_lines WHERE principal_id = ? AND item_id = ?`, principalID, itemID)
	l, err := scanLine(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, unavailable("get cart line", err)
	}
	return l, nil
}

// SaveLine inserta o reemplaza la línea; una línea existente conserva su posición.
func (s *CartStore) SaveLine(ctx context.Context, line entity.CartLine) error {
	updated := line.UpdatedAt
	if updated.IsZero() {
		updated = s.now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cart_lines (`+lineColumns+`, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?,
		        (SELECT COALESCE(MAX(position), 0) + 1 FROM cart_lines WHERE principal_id = ?))
		ON CONFLICT (principal_id, item_id) DO UPDATE SET
			name = excluded.name, quantity = excluded.quantity, price_snapshot = excluded.price_snapshot,
			owner_id = excluded.owner_id, category_id = excluded.category_id,
			category_name = excluded.category_name, updated_at = excluded.updated_at`,
		line.PrincipalID, line.ItemID, line.Name, line.Quantity, line.PriceSnapshot.String(),
		line.OwnerID, line.CategoryID, line.CategoryName, toMillis(updated), line.PrincipalID,
	)
	if err != nil {
		return unavailable("save cart line", err)
	}
	return nil
}

func (s *CartStore) DeleteLine(ctx context.Context, principalID, itemID string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM cart_lines WHERE principal_id = ? AND item_id = ?`, principalID, itemID); err != nil {
		return unavailable("delete cart line", err)
	}
	return nil
}

func (s *CartStore) Clear(ctx context.Context, principalID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM cart_lines WHERE principal_id = ?`, principalID); err != nil {
		return unavailable("clear cart", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLine(row rowScanner) (*entity.CartLine, error) {
	var (
		l       entity.CartLine
		price   string
		updated int64
	)
	if err := row.Scan(&l.PrincipalID, &l.ItemID, &l.Name, &l.Quantity, &price,
		&l.OwnerID, &l.CategoryID, &l.CategoryName, &updated); err != nil {
		return nil, err
	}
	p, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("cart line %s: precio inválido %q: %w", l.ItemID, price, err)
	}
	l.PriceSnapshot = p
	l.UpdatedAt = fromMillis(updated)
	return &l, nil
}

// unavailable clasifica las fallas del archivo local como almacén no disponible.
func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
}
