package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"scaffoldapi/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Keep handlers minimal and free of business logic.
func RegisterRoutes(app *fiber.App, db *sql.DB, assetSvc service.AssetService) {
	// The one endpoint the scaffold exists for: a fixed payload to verify the setup
	app.Get("/api/test-data", TestData())

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Get("/static-assets", ListAssets(assetSvc))
	app.Get("/static-assets/:id", GetAsset(assetSvc))
	app.Delete("/static-assets/:id", DeleteAsset(assetSvc))
	app.Get("/static/:id", DownloadAsset(assetSvc))
}
