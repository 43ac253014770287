// Package storage provides object storage backends for uploaded images.
package storage

import (
	"context"
	"io"

	infraconfig "github.com/shopadmin/backend/internal/infrastructure/config"
)

// ObjectStorage stores uploaded files and returns their public URL
type ObjectStorage interface {
	// Upload writes the object under key and returns the URL clients can fetch it from
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	// Delete removes the object; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error
}

// New selects a backend based on the configured driver
func New(cfg *infraconfig.StorageConfig) (ObjectStorage, error) {
	if cfg.Driver == "s3" {
		return NewS3Storage(cfg)
	}
	return NewFilesystemStorage(cfg)
}
