package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/pedidos-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// constraintSingleSuperadmin índice parcial que admite una sola fila con role = 'superadmin'.
const constraintSingleSuperadmin = "users_single_superadmin"

// uniqueOrWrap traduce violaciones de unicidad a errores de dominio: el índice del superadmin
// a ErrSingleSuperadmin y el resto (id, email) a ErrDuplicate.
func uniqueOrWrap(op string, err error) error {
	if !isUniqueViolation(err) {
		return wrap(op, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.ConstraintName == constraintSingleSuperadmin {
		return fmt.Errorf("%s: %w", op, domain.ErrSingleSuperadmin)
	}
	return fmt.Errorf("%s: %w", op, domain.ErrDuplicate)
}

// isUnavailable reconoce fallas de conexión o del servidor (no errores de la consulta).
func isUnavailable(err error) bool {
	if err == nil {
		return false
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 08: connection_exception, 57P0x: shutdown, 53300: too_many_connections
		return strings.HasPrefix(pgErr.Code, "08") || strings.HasPrefix(pgErr.Code, "57P0") || pgErr.Code == "53300"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return pgconn.SafeToRetry(err)
}

// wrap agrega contexto a err y lo clasifica como domain.ErrStoreUnavailable si corresponde,
// para que el llamador decida si reintenta.
func wrap(op string, err error) error {
	if isUnavailable(err) {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
