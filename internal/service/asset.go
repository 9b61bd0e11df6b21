package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"scaffoldapi/internal/model"
	"scaffoldapi/internal/repository"
	"scaffoldapi/internal/storage"
)

var (
	ErrIDRequired   = errors.New("id is required")
	ErrPathRequired = errors.New("asset path is required")
	ErrNotFound     = errors.New("asset not found")
	ErrReaderNil    = errors.New("reader is nil")
)

// DefaultDownloadExpiry is how long presigned static-asset URLs stay valid.
const DefaultDownloadExpiry = 15 * time.Minute

// AssetListResult is the service-level DTO for paginated assets.
type AssetListResult struct {
	Items []model.StaticAsset `json:"data"`
	Total int                 `json:"total"`
}

// AssetService defines the use cases for collected static assets.
type AssetService interface {
	// Collect streams the file content to object storage and upserts the
	// metadata row keyed by the asset's relative path. Re-collecting a changed
	// file replaces the row and removes the superseded object. Storage is
	// rolled back if the DB write fails.
	Collect(ctx context.Context, r io.Reader, relPath string, contentType string, size int64) (*model.StaticAsset, error)

	// List returns assets using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*AssetListResult, error)

	// Get returns a single asset by its ID.
	Get(ctx context.Context, id string) (*model.StaticAsset, error)

	// PresignDownload returns a time-limited download URL for the asset.
	PresignDownload(ctx context.Context, id string, expiry time.Duration) (string, error)

	// Delete removes an asset by ID from both storage and repository.
	Delete(ctx context.Context, id string) error
}

// assetService is a concrete implementation of AssetService.
type assetService struct {
	store storage.Storage
	repo  repository.AssetRepository
}

// NewAssetService constructs a new AssetService.
func NewAssetService(store storage.Storage, repo repository.AssetRepository) AssetService {
	return &assetService{store: store, repo: repo}
}

func (s *assetService) Collect(ctx context.Context, r io.Reader, relPath string, contentType string, size int64) (*model.StaticAsset, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	if relPath == "" {
		return nil, ErrPathRequired
	}

	// Object key is content-addressed per collection run: UUID + original extension.
	// The relative path stays only in the metadata row, so renames on re-collection
	// never collide inside the bucket.
	ext := filepath.Ext(relPath)
	key := filepath.ToSlash(filepath.Join("static", uuid.New().String()+ext))

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"asset-path": relPath,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	asset := &model.StaticAsset{
		ID:          uuid.New().String(),
		Path:        filepath.ToSlash(relPath),
		StoragePath: objInfo.Key,
		Size:        objInfo.Size,
		ContentType: objInfo.ContentType,
		ETag:        objInfo.ETag,
		CollectedAt: time.Now().UTC(),
	}
	stored, replaced, err := s.repo.Upsert(ctx, asset)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	// The row replaced an earlier collection of the same path; the old object
	// is unreferenced now. A failed cleanup leaves a stray object but never a
	// broken asset record.
	if replaced != "" {
		_ = s.store.Delete(ctx, replaced)
	}

	return stored, nil
}

// List returns paginated assets without exposing repository types.
func (s *assetService) List(ctx context.Context, limit, offset int) (*AssetListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &AssetListResult{Items: res.Items, Total: res.Total}, nil
}

// Get returns an asset by ID.
func (s *assetService) Get(ctx context.Context, id string) (*model.StaticAsset, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	asset, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return asset, nil
}

// PresignDownload returns a short-lived URL for the asset's object.
func (s *assetService) PresignDownload(ctx context.Context, id string, expiry time.Duration) (string, error) {
	if id == "" {
		return "", ErrIDRequired
	}
	if expiry <= 0 {
		expiry = DefaultDownloadExpiry
	}
	asset, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	u, err := s.store.PresignGet(ctx, asset.StoragePath, expiry)
	if err != nil {
		return "", fmt.Errorf("presign download: %w", err)
	}
	return u, nil
}

// Delete removes an asset from storage, then deletes its record.
func (s *assetService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	asset, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	// Delete from storage first; if this fails, keep the DB row so the object
	// reference is not lost.
	if err := s.store.Delete(ctx, asset.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	return s.repo.Delete(ctx, id)
}
