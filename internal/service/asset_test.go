package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"scaffoldapi/internal/model"
	"scaffoldapi/internal/repository"
	repoMocks "scaffoldapi/internal/repository/mocks"
	"scaffoldapi/internal/storage"
	storeMocks "scaffoldapi/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAssetService_Collect(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		relPath     string
		contentType string
		size        int64
		setupMocks  func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockAssetRepository) io.Reader
		wantErr     error
		wantErrMsg  string
	}{
		{
			name:        "happy path",
			relPath:     "css/site.css",
			contentType: "text/css",
			size:        11,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockAssetRepository) io.Reader {
				r := strings.NewReader("body{min:0}")
				mStore.On("Put", ctx, mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, "static/") && strings.HasSuffix(key, ".css")
				}), r, storage.PutObjectOptions{
					Size:        11,
					ContentType: "text/css",
					Metadata:    map[string]string{"asset-path": "css/site.css"},
				}).Return(storage.ObjectInfo{
					Key:         "static/uuid.css",
					Size:        11,
					ContentType: "text/css",
					ETag:        "e1",
				}, nil)

				mRepo.On("Upsert", ctx, mock.MatchedBy(func(a *model.StaticAsset) bool {
					return a.Path == "css/site.css" && a.StoragePath == "static/uuid.css" && a.ETag == "e1"
				})).Return(&model.StaticAsset{ID: "gen-id"}, "", nil)

				return r
			},
		},
		{
			name:    "nil reader",
			relPath: "css/site.css",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockAssetRepository) io.Reader {
				return nil
			},
			wantErr: ErrReaderNil,
		},
		{
			name: "empty path",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockAssetRepository) io.Reader {
				return strings.NewReader("x")
			},
			wantErr: ErrPathRequired,
		},
		{
			name:    "storage error",
			relPath: "css/site.css",
			size:    5,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockAssetRepository) io.Reader {
				r := strings.NewReader("hello")
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(storage.ObjectInfo{}, errors.New("storage fail"))
				return r
			},
			wantErrMsg: "upload to storage: storage fail",
		},
		{
			name:    "repository error with successful rollback",
			relPath: "css/site.css",
			size:    5,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockAssetRepository) io.Reader {
				r := strings.NewReader("hello")
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(func(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
						return storage.ObjectInfo{Key: key}
					}, nil)
				mRepo.On("Upsert", ctx, mock.Anything).
					Return(nil, "", errors.New("db fail"))
				mStore.On("Delete", ctx, mock.Anything).Return(nil)
				return r
			},
			wantErrMsg: "db save failed: db fail",
		},
		{
			name:    "repository error with failed rollback",
			relPath: "css/site.css",
			size:    5,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockAssetRepository) io.Reader {
				r := strings.NewReader("hello")
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(func(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
						return storage.ObjectInfo{Key: key}
					}, nil)
				mRepo.On("Upsert", ctx, mock.Anything).
					Return(nil, "", errors.New("db fail"))
				mStore.On("Delete", ctx, mock.Anything).Return(errors.New("delete fail"))
				return r
			},
			wantErrMsg: "rollback delete failed: delete fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			mRepo := new(repoMocks.MockAssetRepository)
			svc := NewAssetService(mStore, mRepo)

			r := tt.setupMocks(mStore, mRepo)

			asset, err := svc.Collect(ctx, r, tt.relPath, tt.contentType, tt.size)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, asset)
			} else if tt.wantErrMsg != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
				assert.Nil(t, asset)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, asset)
			}

			mStore.AssertExpectations(t)
			mRepo.AssertExpectations(t)
		})
	}
}

func TestAssetService_Collect_ReplacesSupersededObject(t *testing.T) {
	ctx := context.Background()
	mStore := new(storeMocks.MockStorage)
	mRepo := new(repoMocks.MockAssetRepository)
	svc := NewAssetService(mStore, mRepo)

	r := strings.NewReader("fresh")
	mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
		Return(storage.ObjectInfo{Key: "static/new.css", Size: 5}, nil)
	mRepo.On("Upsert", ctx, mock.Anything).
		Return(&model.StaticAsset{ID: "id", StoragePath: "static/new.css"}, "static/old.css", nil)
	mStore.On("Delete", ctx, "static/old.css").Return(nil)

	asset, err := svc.Collect(ctx, r, "css/site.css", "text/css", 5)

	assert.NoError(t, err)
	assert.Equal(t, "static/new.css", asset.StoragePath)
	mStore.AssertExpectations(t)
	mRepo.AssertExpectations(t)
}

func TestAssetService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes pagination", func(t *testing.T) {
		mRepo := new(repoMocks.MockAssetRepository)
		svc := NewAssetService(new(storeMocks.MockStorage), mRepo)

		mRepo.On("List", ctx, repository.PageQuery{Limit: 10, Offset: 0}).
			Return(&repository.PageResult[model.StaticAsset]{Items: []model.StaticAsset{}, Total: 0}, nil)

		res, err := svc.List(ctx, -1, -5)
		assert.NoError(t, err)
		assert.Equal(t, 0, res.Total)
		mRepo.AssertExpectations(t)
	})

	t.Run("repository error", func(t *testing.T) {
		mRepo := new(repoMocks.MockAssetRepository)
		svc := NewAssetService(new(storeMocks.MockStorage), mRepo)

		mRepo.On("List", ctx, mock.Anything).Return(nil, errors.New("db down"))

		res, err := svc.List(ctx, 10, 0)
		assert.Error(t, err)
		assert.Nil(t, res)
	})
}

func TestAssetService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mRepo := new(repoMocks.MockAssetRepository)
		svc := NewAssetService(new(storeMocks.MockStorage), mRepo)

		mRepo.On("FindByID", ctx, "id-1").Return(&model.StaticAsset{ID: "id-1"}, nil)

		asset, err := svc.Get(ctx, "id-1")
		assert.NoError(t, err)
		assert.Equal(t, "id-1", asset.ID)
	})

	t.Run("not found maps sql.ErrNoRows", func(t *testing.T) {
		mRepo := new(repoMocks.MockAssetRepository)
		svc := NewAssetService(new(storeMocks.MockStorage), mRepo)

		mRepo.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		asset, err := svc.Get(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, asset)
	})

	t.Run("empty id", func(t *testing.T) {
		svc := NewAssetService(new(storeMocks.MockStorage), new(repoMocks.MockAssetRepository))

		_, err := svc.Get(ctx, "")
		assert.ErrorIs(t, err, ErrIDRequired)
	})
}

func TestAssetService_PresignDownload(t *testing.T) {
	ctx := context.Background()

	t.Run("success with default expiry", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockAssetRepository)
		svc := NewAssetService(mStore, mRepo)

		mRepo.On("FindByID", ctx, "id-1").
			Return(&model.StaticAsset{ID: "id-1", StoragePath: "static/a.css"}, nil)
		mStore.On("PresignGet", ctx, "static/a.css", DefaultDownloadExpiry).
			Return("https://storage.example.com/signed", nil)

		u, err := svc.PresignDownload(ctx, "id-1", 0)
		assert.NoError(t, err)
		assert.Equal(t, "https://storage.example.com/signed", u)
		mStore.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mRepo := new(repoMocks.MockAssetRepository)
		svc := NewAssetService(new(storeMocks.MockStorage), mRepo)

		mRepo.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		_, err := svc.PresignDownload(ctx, "missing", time.Minute)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("presign error", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockAssetRepository)
		svc := NewAssetService(mStore, mRepo)

		mRepo.On("FindByID", ctx, "id-1").
			Return(&model.StaticAsset{ID: "id-1", StoragePath: "static/a.css"}, nil)
		mStore.On("PresignGet", ctx, "static/a.css", time.Minute).
			Return("", errors.New("sign fail"))

		_, err := svc.PresignDownload(ctx, "id-1", time.Minute)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "presign download")
	})
}

func TestAssetService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockAssetRepository)
		svc := NewAssetService(mStore, mRepo)

		mRepo.On("FindByID", ctx, "id-1").
			Return(&model.StaticAsset{ID: "id-1", StoragePath: "static/a.css"}, nil)
		mStore.On("Delete", ctx, "static/a.css").Return(nil)
		mRepo.On("Delete", ctx, "id-1").Return(nil)

		err := svc.Delete(ctx, "id-1")
		assert.NoError(t, err)
		mStore.AssertExpectations(t)
		mRepo.AssertExpectations(t)
	})

	t.Run("storage failure keeps the row", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockAssetRepository)
		svc := NewAssetService(mStore, mRepo)

		mRepo.On("FindByID", ctx, "id-1").
			Return(&model.StaticAsset{ID: "id-1", StoragePath: "static/a.css"}, nil)
		mStore.On("Delete", ctx, "static/a.css").Return(errors.New("storage fail"))

		err := svc.Delete(ctx, "id-1")
		assert.Error(t, err)
		mRepo.AssertNotCalled(t, "Delete", ctx, "id-1")
	})

	t.Run("not found", func(t *testing.T) {
		mRepo := new(repoMocks.MockAssetRepository)
		svc := NewAssetService(new(storeMocks.MockStorage), mRepo)

		mRepo.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		err := svc.Delete(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
