package handler

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"scaffoldapi/internal/model"
	"scaffoldapi/internal/service"
)

// TestData returns the fixed verification payload. The body is a literal and
// is identical on every request, which is the whole point: one GET against a
// fresh deployment proves routing, JSON encoding, and the process manager work.
//
// @Summary Scaffold verification payload
// @Tags test-data
// @Produce json
// @Success 200 {object} model.TestData
// @Router /api/test-data [get]
func TestData() fiber.Handler {
	payload := model.TestData{
		Message: "This is hardcoded data for testing the API scaffold setup!",
		Status:  "success",
		Data: model.TestDataDetails{
			User:         "Satyam Rana",
			Role:         "Developer",
			Technologies: []string{"Go", "Fiber", "PostgreSQL"},
			Project:      "scaffoldapi",
		},
	}
	return func(c *fiber.Ctx) error {
		return c.JSON(payload)
	}
}

// HealthCheck reports readiness: it verifies DB connectivity with a short timeout.
//
// @Summary Readiness probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} errorPayload
// @Router /health [get]
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is the simple liveness endpoint; it answers 200 whenever the
// process is up.
//
// @Summary Liveness probe
// @Tags health
// @Success 200
// @Router /healthz [get]
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// ListAssets lists collected static assets with limit & offset.
//
// @Summary List collected static assets
// @Tags static-assets
// @Produce json
// @Param limit query int false "page size" default(10)
// @Param offset query int false "page offset" default(0)
// @Success 200 {object} service.AssetListResult
// @Failure 400 {object} errorPayload
// @Router /static-assets [get]
func ListAssets(svc service.AssetService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// GetAsset returns a single asset's metadata by ID.
//
// @Summary Get static asset metadata
// @Tags static-assets
// @Produce json
// @Param id path string true "asset id"
// @Success 200 {object} model.StaticAsset
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /static-assets/{id} [get]
func GetAsset(svc service.AssetService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		asset, err := svc.Get(c.UserContext(), id)
		if err != nil {
			if isNotFound(err) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "asset not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(asset)
	}
}

// DownloadAsset redirects to a short-lived presigned URL for the asset's content.
//
// @Summary Download a static asset
// @Tags static-assets
// @Param id path string true "asset id"
// @Success 302
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /static/{id} [get]
func DownloadAsset(svc service.AssetService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		u, err := svc.PresignDownload(c.UserContext(), id, service.DefaultDownloadExpiry)
		if err != nil {
			if isNotFound(err) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "asset not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Redirect(u, fiber.StatusFound)
	}
}

// DeleteAsset removes an asset's object and metadata row by ID.
//
// @Summary Delete a static asset
// @Tags static-assets
// @Param id path string true "asset id"
// @Success 204
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /static-assets/{id} [delete]
func DeleteAsset(svc service.AssetService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			if isNotFound(err) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "asset not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, service.ErrNotFound)
}
