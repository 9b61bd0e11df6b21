package model

import "time"

// StaticAsset is the metadata record for one collected static file.
// This is a pure domain model with no database-specific dependencies or tags.
// It can be used across layers (HTTP, service, storage) without coupling to persistence.
type StaticAsset struct {
	ID          string    `json:"id"`
	Path        string    `json:"path"`
	StoragePath string    `json:"storage_path"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	ETag        string    `json:"etag"`
	CollectedAt time.Time `json:"collected_at"`
}
