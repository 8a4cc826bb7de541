package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, email, display_name, nombre, apellido_paterno, apellido_materno, rut, role, account_kind, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL (tabla users).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para perfiles. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo perfil. El índice parcial users_single_superadmin impide un segundo superadmin.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.Email, u.DisplayName, u.Nombre, u.ApellidoPaterno, u.ApellidoMaterno, u.RUT,
		u.Role, u.AccountKind, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return uniqueOrWrap("insert user", err)
	}
	return nil
}

// GetByID obtiene un perfil por ID (uid del proveedor de identidad).
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail obtiene un perfil por email (sin distinguir mayúsculas).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1) LIMIT 1`, email)
}

func (r *UserRepo) getOne(ctx context.Context, query string, arg string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrap("get user", err)
	}
	return u, nil
}

// Update actualiza los datos de perfil. El rol no se toca aquí: solo UpdateRole lo cambia.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	query := `
		UPDATE users SET email = $2, display_name = $3, nombre = $4, apellido_paterno = $5,
		       apellido_materno = $6, rut = $7, account_kind = $8, updated_at = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		u.ID, u.Email, u.DisplayName, u.Nombre, u.ApellidoPaterno, u.ApellidoMaterno, u.RUT,
		u.AccountKind, u.UpdatedAt,
	)
	if err != nil {
		return uniqueOrWrap("update user", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpdateWithRole actualiza perfil y rol en un único UPDATE: si el índice de superadmin
// único o el de email rechazan la fila, no se escribe nada.
func (r *UserRepo) UpdateWithRole(ctx context.Context, u *entity.User) error {
	query := `
		UPDATE users SET email = $2, display_name = $3, nombre = $4, apellido_paterno = $5,
		       apellido_materno = $6, rut = $7, account_kind = $8, role = $9, updated_at = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		u.ID, u.Email, u.DisplayName, u.Nombre, u.ApellidoPaterno, u.ApellidoMaterno, u.RUT,
		u.AccountKind, u.Role, u.UpdatedAt,
	)
	if err != nil {
		return uniqueOrWrap("update user with role", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpdateRole escritura de un solo documento: cambia el rol y nada más.
func (r *UserRepo) UpdateRole(ctx context.Context, id, role string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE users SET role = $2, updated_at = now() WHERE id = $1`, id, role)
	if err != nil {
		return uniqueOrWrap("update user role", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Delete elimina un perfil por ID.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return wrap("delete user", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// List devuelve todos los perfiles ordenados por email.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY email`)
	if err != nil {
		return nil, wrap("list users", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, wrap("scan user", err)
		}
		list = append(list, u)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list users", err)
	}
	return list, nil
}

// ExistsWithRole indica si algún perfil tiene el rol dado.
func (r *UserRepo) ExistsWithRole(ctx context.Context, role string) (bool, error) {
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE role = $1)`, role).Scan(&exists); err != nil {
		return false, wrap("exists user role", err)
	}
	return exists, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.Email, &u.DisplayName, &u.Nombre, &u.ApellidoPaterno, &u.ApellidoMaterno, &u.RUT,
		&u.Role, &u.AccountKind, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
