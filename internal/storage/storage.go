package storage

import (
	"context"

	"github.com/yourorg/buildbid/internal/config"
)

// StoredFile describes a persisted object.
type StoredFile struct {
	Path string
	URL  string
}

// Storage defines the interface for generated image storage
type Storage interface {
	// Store saves data under the given path and returns where it landed
	Store(ctx context.Context, path string, contentType string, data []byte) (*StoredFile, error)

	// Delete removes a stored object
	Delete(ctx context.Context, path string) error
}

// NewStorage creates a storage implementation based on the configuration
func NewStorage(cfg *config.StorageConfig) (Storage, error) {
	switch cfg.Type {
	case "s3":
		return NewS3Storage(&cfg.S3)
	default:
		return NewLocalStorage(&cfg.Local)
	}
}
