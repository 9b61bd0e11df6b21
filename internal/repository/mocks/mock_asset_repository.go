package mocks

import (
	"context"

	"scaffoldapi/internal/model"
	"scaffoldapi/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockAssetRepository struct {
	mock.Mock
}

func (m *MockAssetRepository) Upsert(ctx context.Context, asset *model.StaticAsset) (*model.StaticAsset, string, error) {
	args := m.Called(ctx, asset)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*model.StaticAsset), args.String(1), args.Error(2)
}

func (m *MockAssetRepository) FindByID(ctx context.Context, id string) (*model.StaticAsset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StaticAsset), args.Error(1)
}

func (m *MockAssetRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.StaticAsset], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.StaticAsset]), args.Error(1)
}

func (m *MockAssetRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
