package mocks

import (
	"context"
	"io"
	"time"

	"scaffoldapi/internal/model"
	"scaffoldapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockAssetService struct {
	mock.Mock
}

func (m *MockAssetService) Collect(ctx context.Context, r io.Reader, relPath string, contentType string, size int64) (*model.StaticAsset, error) {
	args := m.Called(ctx, r, relPath, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StaticAsset), args.Error(1)
}

func (m *MockAssetService) List(ctx context.Context, limit, offset int) (*service.AssetListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AssetListResult), args.Error(1)
}

func (m *MockAssetService) Get(ctx context.Context, id string) (*model.StaticAsset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StaticAsset), args.Error(1)
}

func (m *MockAssetService) PresignDownload(ctx context.Context, id string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, id, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockAssetService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
