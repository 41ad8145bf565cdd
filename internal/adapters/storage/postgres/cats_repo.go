package postgres

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
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
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
		WHERE id = $1
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
		WHERE owner_user_id = $1
		ORDER BY created_at ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCats(rows)
}

// FindInBox expresa la misma ley de contención que cats.InBox como BETWEEN:
// rectángulo cerrado en (lon, lat). Un box invertido no matchea filas, igual
// que el predicado.
func (r *CatsRepo) FindInBox(ctx context.Context, bottomLeft, topRight cats.GeoPoint) ([]cats.Cat, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+catColumns+`
		FROM cats
		WHERE lon BETWEEN $1 AND $2
		  AND lat BETWEEN $3 AND $4
	`, bottomLeft.Lon, topRight.Lon, bottomLeft.Lat, topRight.Lat)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCats(rows)
}

// UpdateOwned es un solo UPDATE condicional por (id, owner): el check de
// ownership y la escritura son la misma operación, sin ventana TOCTOU.
func (r *CatsRepo) UpdateOwned(ctx context.Context, id, ownerUserID string, in cats.UpdateInput, now time.Time) (cats.Cat, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE cats SET
			name = COALESCE($3, name),
			weight = COALESCE($4, weight),
			birthdate = COALESCE($5, birthdate),
			updated_at = $6
		WHERE id = $1 AND owner_user_id = $2
		RETURNING `+catColumns,
		id, ownerUserID, in.Name, in.Weight, in.BirthDate, now,
	)
	return scanCat(row)
}

func (r *CatsRepo) DeleteOwned(ctx context.Context, id, ownerUserID string) (cats.Cat, error) {
	row := r.db.QueryRowContext(ctx, `
		DELETE FROM cats
		WHERE id = $1 AND owner_user_id = $2
		RETURNING `+catColumns,
		id, ownerUserID,
	)
	return scanCat(row)
}

func (r *CatsRepo) UpdateByID(ctx context.Context, id string, in cats.AdminUpdateInput, now time.Time) (cats.Cat, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE cats SET
			name = COALESCE($2, name),
			weight = COALESCE($3, weight),
			birthdate = COALESCE($4, birthdate),
			owner_user_id = COALESCE($5, owner_user_id),
			updated_at = $6
		WHERE id = $1
		RETURNING `+catColumns,
		id, in.Name, in.Weight, in.BirthDate, in.Owner, now,
	)
	return scanCat(row)
}

func (r *CatsRepo) DeleteByID(ctx context.Context, id string) (cats.Cat, error) {
	row := r.db.QueryRowContext(ctx, `
		DELETE FROM cats
		WHERE id = $1
		RETURNING `+catColumns,
		id,
	)
	return scanCat(row)
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
