package repository

import (
	"context"

	"scaffoldapi/internal/model"
)

// AssetRepository defines data access for collected static assets using SQL
// queries only. No business logic here — strictly persistence operations.
type AssetRepository interface {
	// Upsert inserts the asset record, or replaces the existing record with the
	// same path (re-collection of a changed file). Returns the stored row and,
	// when a row was replaced, the storage path of the superseded object so the
	// caller can remove it.
	Upsert(ctx context.Context, asset *model.StaticAsset) (stored *model.StaticAsset, replacedStoragePath string, err error)

	// FindByID returns an asset by its ID.
	FindByID(ctx context.Context, id string) (*model.StaticAsset, error)

	// List returns a paginated list of assets and the total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.StaticAsset], error)

	// Delete removes an asset by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
