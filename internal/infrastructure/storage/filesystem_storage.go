package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	infraconfig "github.com/shopadmin/backend/internal/infrastructure/config"
)

var _ ObjectStorage = (*FilesystemStorage)(nil)

// FilesystemStorage writes objects under a local directory.
// Intended for development and single-node deployments where running an
// object store is overkill. The HTTP layer serves the directory statically.
type FilesystemStorage struct {
	root          string
	publicBaseURL string
}

// NewFilesystemStorage creates a FilesystemStorage rooted at cfg.LocalPath
func NewFilesystemStorage(cfg *infraconfig.StorageConfig) (*FilesystemStorage, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}

	root := cfg.LocalPath
	if root == "" {
		root = "uploads"
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	base := strings.TrimRight(cfg.PublicBaseURL, "/")
	if base == "" {
		base = "/uploads"
	}

	return &FilesystemStorage{root: root, publicBaseURL: base}, nil
}

// Root returns the directory objects are written to
func (f *FilesystemStorage) Root() string {
	return f.root
}

// Upload writes the object to disk and returns its public URL
func (f *FilesystemStorage) Upload(_ context.Context, key, _ string, body io.Reader) (string, error) {
	path, err := f.resolve(key)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create object directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create object file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, body); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write object: %w", err)
	}

	return f.publicBaseURL + "/" + key, nil
}

// Delete removes the object file, ignoring missing keys
func (f *FilesystemStorage) Delete(_ context.Context, key string) error {
	path, err := f.resolve(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// resolve maps a key to a path under root, rejecting traversal outside it
func (f *FilesystemStorage) resolve(key string) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}

	cleaned := filepath.Clean(filepath.FromSlash(key))
	if cleaned == "." || strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("invalid storage key: %s", key)
	}

	return filepath.Join(f.root, cleaned), nil
}
