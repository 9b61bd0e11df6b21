// Command collectstatic walks the configured static directory and uploads
// every regular file into object storage, recording metadata rows as it goes.
// It is invoked by the build script so a deploy always serves the assets that
// shipped with it. Re-collecting an unchanged tree only replaces rows whose
// content moved.
package main

import (
	"context"
	"encoding/json"
	"io/fs"
	"log"
	"mime"
	"os"
	"path/filepath"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"scaffoldapi/internal/config"
	"scaffoldapi/internal/database"
	"scaffoldapi/internal/database/migration"
	"scaffoldapi/internal/repository/postgres"
	"scaffoldapi/internal/service"
	"scaffoldapi/internal/storage"
)

func main() {
	cfg := config.Load()

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		log.Fatalf("invalid TIME_ZONE %q: %v", cfg.TimeZone, err)
	}

	ctx := context.Background()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	// The build may run against a fresh database
	if err := migration.EnsureMigrated(ctx, db, loc, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	objStore, err := storage.NewMinIO(cfg.Storage)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	svc := service.NewAssetService(objStore, postgres.NewAssetPostgres(db))

	start := time.Now()
	collected, err := collectDir(ctx, svc, cfg.StaticDir)
	if err != nil {
		log.Fatalf("collectstatic failed: %v", err)
	}

	logJSON(loc, map[string]any{
		"component":   "collectstatic",
		"event":       "collect_done",
		"status":      "success",
		"static_dir":  cfg.StaticDir,
		"collected":   collected,
		"duration_ms": time.Since(start).Milliseconds(),
	})
}

// collectDir uploads every regular file under root, keyed by its path
// relative to root. Returns the number of collected files.
func collectDir(ctx context.Context, svc service.AssetService, root string) (int, error) {
	collected := 0

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		ct := mime.TypeByExtension(filepath.Ext(path))
		if ct == "" {
			ct = "application/octet-stream"
		}

		if _, err := svc.Collect(ctx, f, filepath.ToSlash(rel), ct, info.Size()); err != nil {
			return err
		}
		collected++
		return nil
	})
	if err != nil {
		return collected, err
	}
	return collected, nil
}

func logJSON(loc *time.Location, data map[string]any) {
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		data["level"] = "info"
	}
	if b, err := json.Marshal(data); err == nil {
		log.SetFlags(0)
		log.Println(string(b))
	}
}
