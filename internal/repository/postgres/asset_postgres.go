package postgres

import (
	"context"
	"database/sql"
	"errors"

	"scaffoldapi/internal/model"
	"scaffoldapi/internal/repository"
)

// AssetPostgres is a PostgreSQL implementation of repository.AssetRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type AssetPostgres struct {
	db *sql.DB
}

// NewAssetPostgres creates a new AssetPostgres repository.
func NewAssetPostgres(db *sql.DB) *AssetPostgres {
	return &AssetPostgres{db: db}
}

var _ repository.AssetRepository = (*AssetPostgres)(nil)

// Upsert inserts the asset row, replacing any existing row with the same path.
// The previous storage path (if a row was replaced) is read inside the same
// transaction so the caller can clean up the superseded object.
func (r *AssetPostgres) Upsert(ctx context.Context, asset *model.StaticAsset) (*model.StaticAsset, string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, "", err
	}
	defer tx.Rollback()

	var replaced string
	const qOld = `SELECT storage_path FROM static_assets WHERE path = $1`
	if err := tx.QueryRowContext(ctx, qOld, asset.Path).Scan(&replaced); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, "", err
	}

	const qUpsert = `
		INSERT INTO static_assets (id, path, storage_path, size, content_type, etag, collected_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (path) DO UPDATE SET
			storage_path = EXCLUDED.storage_path,
			size         = EXCLUDED.size,
			content_type = EXCLUDED.content_type,
			etag         = EXCLUDED.etag,
			collected_at = EXCLUDED.collected_at
		RETURNING id, path, storage_path, size, content_type, etag, collected_at
	`
	row := tx.QueryRowContext(ctx, qUpsert,
		asset.ID,
		asset.Path,
		asset.StoragePath,
		asset.Size,
		asset.ContentType,
		asset.ETag,
		asset.CollectedAt,
	)
	var out model.StaticAsset
	if err := row.Scan(
		&out.ID,
		&out.Path,
		&out.StoragePath,
		&out.Size,
		&out.ContentType,
		&out.ETag,
		&out.CollectedAt,
	); err != nil {
		return nil, "", err
	}

	if err := tx.Commit(); err != nil {
		return nil, "", err
	}

	if replaced == out.StoragePath {
		replaced = ""
	}
	return &out, replaced, nil
}

// FindByID fetches a single asset by its ID.
func (r *AssetPostgres) FindByID(ctx context.Context, id string) (*model.StaticAsset, error) {
	const q = `
		SELECT id, path, storage_path, size, content_type, etag, collected_at
		FROM static_assets
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, q, id)
	var a model.StaticAsset
	if err := row.Scan(
		&a.ID,
		&a.Path,
		&a.StoragePath,
		&a.Size,
		&a.ContentType,
		&a.ETag,
		&a.CollectedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

// List returns assets using LIMIT/OFFSET pagination and a total count.
func (r *AssetPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.StaticAsset], error) {
	const qCount = `SELECT COUNT(*) FROM static_assets`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT id, path, storage_path, size, content_type, etag, collected_at
		FROM static_assets
		ORDER BY path ASC, id ASC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.StaticAsset, 0)
	for rows.Next() {
		var a model.StaticAsset
		if err := rows.Scan(
			&a.ID,
			&a.Path,
			&a.StoragePath,
			&a.Size,
			&a.ContentType,
			&a.ETag,
			&a.CollectedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.StaticAsset]{
		Items: items,
		Total: total,
	}, nil
}

// Delete removes an asset by ID. It does not return an error if the row does not exist.
func (r *AssetPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM static_assets WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}
