package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"cat-api/internal/domain/cats"
)

type CatsRepo struct {
	db *sql.DB
}

func NewCatsRepo(db *sql.DB) *CatsRepo {
	return &CatsRepo{db: db}
}

const catColumns = `
	id, owner_user_id,
	name, weight, filename, birthdate,
	lon, lat,
	created_at, updated_at
`

func (r *CatsRepo) Create(ctx context.Context, c cats.Cat) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cats (
			id, owner_user_id,
			name, weight, filename, birthdate,
			lon, lat,
			created_at, updated_at
		) VALUES (?,?,?,?,?,?,?,?,?,?)
	`,
		c.ID,
		c.OwnerUserID,
		c.Name,
		c.Weight,
		c.Filename,
		c.BirthDate,
		c.Location.Lon,
		c.Location.Lat,
		c.CreatedAt,
		c.UpdatedAt,
	)
	return err
}

func (r *CatsRepo) GetByID(ctx context.Context, id string) (cats.Cat, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+catColumns+`
		FROM cats
		WHERE id = ?
	`, id)
	return scanCat(row)
}

func (r *CatsRepo) ListAll(ctx context.Context) ([]cats.Cat, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+catColumns+`
		FROM cats
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCats(rows)
}

func (r *CatsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]cats.Cat, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+catColumns+`
		FROM cats
		WHERE owner_user_id = ?
		ORDER BY created_at ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCats(rows)
}

// Misma ley de contención que cats.InBox, expresada como BETWEEN.
func (r *CatsRepo) FindInBox(ctx context.Context, bottomLeft, topRight cats.GeoPoint) ([]cats.Cat, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+catColumns+`
		FROM cats
		WHERE lon BETWEEN ? AND ?
		  AND lat BETWEEN ? AND ?
	`, bottomLeft.Lon, topRight.Lon, bottomLeft.Lat, topRight.Lat)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCats(rows)
}

// UpdateOwned: sqlite no soporta UPDATE ... RETURNING en todas las versiones
// que nos importan, pero sí garantiza escritores serializados, así que el
// par UPDATE condicional + SELECT dentro de una transacción inmediata cumple
// la misma atomicidad por registro.
func (r *CatsRepo) UpdateOwned(ctx context.Context, id, ownerUserID string, in cats.UpdateInput, now time.Time) (cats.Cat, error) {
	return r.updateTx(ctx, `
		UPDATE cats SET
			name = COALESCE(?, name),
			weight = COALESCE(?, weight),
			birthdate = COALESCE(?, birthdate),
			updated_at = ?
		WHERE id = ? AND owner_user_id = ?
	`, []any{in.Name, in.Weight, in.BirthDate, now, id, ownerUserID}, id)
}

func (r *CatsRepo) DeleteOwned(ctx context.Context, id, ownerUserID string) (cats.Cat, error) {
	return r.deleteTx(ctx, `DELETE FROM cats WHERE id = ? AND owner_user_id = ?`, []any{id, ownerUserID}, id)
}

func (r *CatsRepo) UpdateByID(ctx context.Context, id string, in cats.AdminUpdateInput, now time.Time) (cats.Cat, error) {
	return r.updateTx(ctx, `
		UPDATE cats SET
			name = COALESCE(?, name),
			weight = COALESCE(?, weight),
			birthdate = COALESCE(?, birthdate),
			owner_user_id = COALESCE(?, owner_user_id),
			updated_at = ?
		WHERE id = ?
	`, []any{in.Name, in.Weight, in.BirthDate, in.Owner, now, id}, id)
}

func (r *CatsRepo) DeleteByID(ctx context.Context, id string) (cats.Cat, error) {
	return r.deleteTx(ctx, `DELETE FROM cats WHERE id = ?`, []any{id}, id)
}

func (r *CatsRepo) updateTx(ctx context.Context, query string, args []any, id string) (cats.Cat, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return cats.Cat{}, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return cats.Cat{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return cats.Cat{}, cats.ErrNotFound
	}

	c, err := scanCat(tx.QueryRowContext(ctx, `SELECT `+catColumns+` FROM cats WHERE id = ?`, id))
	if err != nil {
		return cats.Cat{}, err
	}

	return c, tx.Commit()
}

// deleteTx devuelve el estado previo del registro borrado.
func (r *CatsRepo) deleteTx(ctx context.Context, query string, args []any, id string) (cats.Cat, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return cats.Cat{}, err
	}
	defer tx.Rollback()

	c, err := scanCat(tx.QueryRowContext(ctx, `SELECT `+catColumns+` FROM cats WHERE id = ?`, id))
	if err != nil {
		return cats.Cat{}, err
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return cats.Cat{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// El registro existe pero no con ese owner.
		return cats.Cat{}, cats.ErrNotFound
	}

	return c, tx.Commit()
}

func scanCat(row *sql.Row) (cats.Cat, error) {
	var c cats.Cat
	if err := row.Scan(
		&c.ID,
		&c.OwnerUserID,
		&c.Name,
		&c.Weight,
		&c.Filename,
		&c.BirthDate,
		&c.Location.Lon,
		&c.Location.Lat,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return cats.Cat{}, cats.ErrNotFound
		}
		return cats.Cat{}, err
	}
	return c, nil
}

func scanCats(rows *sql.Rows) ([]cats.Cat, error) {
	out := make([]cats.Cat, 0)
	for rows.Next() {
		var c cats.Cat
		if err := rows.Scan(
			&c.ID,
			&c.OwnerUserID,
			&c.Name,
			&c.Weight,
			&c.Filename,
			&c.BirthDate,
			&c.Location.Lon,
			&c.Location.Lat,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
