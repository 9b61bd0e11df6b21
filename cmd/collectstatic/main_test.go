package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"scaffoldapi/internal/model"
	serviceMocks "scaffoldapi/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestCollectDir(t *testing.T) {
	ctx := context.Background()

	t.Run("collects every regular file with relative paths", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "robots.txt", "User-agent: *\n")
		writeFile(t, dir, "css/site.css", "body{}")

		mockSvc := new(serviceMocks.MockAssetService)
		mockSvc.On("Collect", ctx, mock.Anything, "robots.txt", "text/plain; charset=utf-8", int64(14)).
			Return(&model.StaticAsset{ID: "a"}, nil).Once()
		mockSvc.On("Collect", ctx, mock.Anything, "css/site.css", "text/css; charset=utf-8", int64(6)).
			Return(&model.StaticAsset{ID: "b"}, nil).Once()

		n, err := collectDir(ctx, mockSvc, dir)

		assert.NoError(t, err)
		assert.Equal(t, 2, n)
		mockSvc.AssertExpectations(t)
	})

	t.Run("unknown extensions fall back to octet-stream", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "blob.weirdext", "data")

		mockSvc := new(serviceMocks.MockAssetService)
		mockSvc.On("Collect", ctx, mock.Anything, "blob.weirdext", "application/octet-stream", int64(4)).
			Return(&model.StaticAsset{ID: "c"}, nil).Once()

		n, err := collectDir(ctx, mockSvc, dir)

		assert.NoError(t, err)
		assert.Equal(t, 1, n)
		mockSvc.AssertExpectations(t)
	})

	t.Run("stops on service error", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "a.txt", "x")

		mockSvc := new(serviceMocks.MockAssetService)
		mockSvc.On("Collect", ctx, mock.Anything, "a.txt", mock.Anything, int64(1)).
			Return(nil, errors.New("upload failed")).Once()

		_, err := collectDir(ctx, mockSvc, dir)

		assert.Error(t, err)
	})

	t.Run("missing directory", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockAssetService)
		_, err := collectDir(ctx, mockSvc, filepath.Join(t.TempDir(), "nope"))
		assert.Error(t, err)
	})
}
