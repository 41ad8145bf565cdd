package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"cat-api/internal/domain/users"
	"cat-api/internal/ports/auth"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

const userColumns = `
	id, username, email, password_hash, role,
	created_at, updated_at
`

func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (
			id, username, email, password_hash, role,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		u.ID,
		u.Username,
		u.Email,
		u.PasswordHash,
		string(u.Role),
		u.CreatedAt,
		u.UpdatedAt,
	)
	return err
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id)
	return scanUser(row)
}

func (r *UsersRepo) ListAll(ctx context.Context) ([]users.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]users.User, 0)
	for rows.Next() {
		u, err := scanUserRows(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UsersRepo) UpdateByID(ctx context.Context, id string, in users.UpdateInput, now time.Time) (users.User, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE users SET
			username = COALESCE($2, username),
			email = COALESCE($3, email),
			password_hash = COALESCE($4, password_hash),
			updated_at = $5
		WHERE id = $1
		RETURNING `+userColumns,
		id, in.Username, in.Email, in.PasswordHash, now,
	)
	return scanUser(row)
}

func (r *UsersRepo) DeleteByID(ctx context.Context, id string) (users.User, error) {
	row := r.db.QueryRowContext(ctx, `
		DELETE FROM users
		WHERE id = $1
		RETURNING `+userColumns,
		id,
	)
	return scanUser(row)
}

func scanUser(row *sql.Row) (users.User, error) {
	var u users.User
	var role string
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&role,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, err
	}
	u.Role = auth.ParseRole(role)
	return u, nil
}

func scanUserRows(rows *sql.Rows) (users.User, error) {
	var u users.User
	var role string
	if err := rows.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&role,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return users.User{}, err
	}
	u.Role = auth.ParseRole(role)
	return u, nil
}
