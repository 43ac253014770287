// Package media validates and stores uploaded product images.
package media

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/shopadmin/backend/internal/domain/shared"
	infraconfig "github.com/shopadmin/backend/internal/infrastructure/config"
	"github.com/shopadmin/backend/internal/infrastructure/storage"
)

// allowedExtensions maps accepted file extensions to their content type
var allowedExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// UploadResult carries the stored URLs in the order files were submitted
type UploadResult struct {
	URLs []string `json:"urls"`
}

// UploadService stores validated image files in object storage
type UploadService struct {
	store       storage.ObjectStorage
	maxFiles    int
	maxFileSize int64
	logger      *zap.Logger
}

// NewUploadService creates a new UploadService
func NewUploadService(store storage.ObjectStorage, cfg *infraconfig.UploadConfig, logger *zap.Logger) *UploadService {
	return &UploadService{
		store:       store,
		maxFiles:    cfg.MaxFiles,
		maxFileSize: cfg.MaxFileSize,
		logger:      logger,
	}
}

// Upload validates the batch and writes all files concurrently.
// Validation runs fully before any byte is stored: an invalid batch must
// not leave partial objects behind.
func (s *UploadService) Upload(ctx context.Context, files []*multipart.FileHeader) (*UploadResult, error) {
	if len(files) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "At least one image file is required")
	}
	if len(files) > s.maxFiles {
		return nil, shared.NewDomainError("TOO_MANY_FILES",
			fmt.Sprintf("At most %d images per upload", s.maxFiles))
	}

	for _, fh := range files {
		ext := strings.ToLower(filepath.Ext(fh.Filename))
		if _, ok := allowedExtensions[ext]; !ok {
			return nil, shared.NewDomainError("UNSUPPORTED_MEDIA_TYPE",
				fmt.Sprintf("Unsupported image type %q, allowed: jpg, jpeg, png", ext))
		}
		if fh.Size > s.maxFileSize {
			return nil, shared.NewDomainError("FILE_TOO_LARGE",
				fmt.Sprintf("File %q exceeds the %d MB limit", fh.Filename, s.maxFileSize>>20))
		}
	}

	urls := make([]string, len(files))
	g, gctx := errgroup.WithContext(ctx)

	for i, fh := range files {
		g.Go(func() error {
			ext := strings.ToLower(filepath.Ext(fh.Filename))
			key := fmt.Sprintf("images/%s%s", uuid.New().String(), ext)

			file, err := fh.Open()
			if err != nil {
				return fmt.Errorf("failed to open uploaded file %q: %w", fh.Filename, err)
			}
			defer file.Close()

			url, err := s.store.Upload(gctx, key, allowedExtensions[ext], file)
			if err != nil {
				return err
			}
			urls[i] = url
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Info("Images uploaded", zap.Int("count", len(files)))
	return &UploadResult{URLs: urls}, nil
}
