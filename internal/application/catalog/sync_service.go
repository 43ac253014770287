package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/shopadmin/backend/internal/domain/catalog"
	"github.com/shopadmin/backend/internal/domain/integration"
	"github.com/shopadmin/backend/internal/domain/shared"
	"github.com/shopadmin/backend/internal/infrastructure/cache"
)

const productSyncKey = "products"

// CatalogSyncService reconciles the local catalog against the platform.
// The platform listing is authoritative for linked products: local linked
// rows are created, updated, or removed to match it. Products never
// mirrored (no external ID) are left untouched.
type CatalogSyncService struct {
	productRepo catalog.ProductRepository
	platform    integration.CommercePlatform
	cooldown    cache.CooldownGuard
	cooldownTTL time.Duration
	logger      *zap.Logger
}

// NewCatalogSyncService creates a new CatalogSyncService
func NewCatalogSyncService(
	productRepo catalog.ProductRepository,
	platform integration.CommercePlatform,
	cooldown cache.CooldownGuard,
	cooldownTTL time.Duration,
	logger *zap.Logger,
) *CatalogSyncService {
	return &CatalogSyncService{
		productRepo: productRepo,
		platform:    platform,
		cooldown:    cooldown,
		cooldownTTL: cooldownTTL,
		logger:      logger,
	}
}

// Sync pulls the full remote product listing and reconciles local state.
// Repeated triggers inside the cooldown window are refused.
func (s *CatalogSyncService) Sync(ctx context.Context) (*SyncResult, error) {
	if s.platform == nil {
		return nil, shared.NewDomainError("INVALID_STATE", "Commerce platform is not configured")
	}

	acquired, err := s.cooldown.Acquire(ctx, productSyncKey, s.cooldownTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, shared.ErrRateLimited
	}

	remote, err := s.platform.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list products: %s", shared.ErrSyncFailed, err)
	}

	result := &SyncResult{}
	seen := make([]string, 0, len(remote))

	for i := range remote {
		r := &remote[i]
		seen = append(seen, r.ExternalID)

		local, err := s.productRepo.FindByExternalID(ctx, r.ExternalID)
		switch {
		case err == nil:
			if err := local.Update(r.Title, r.Description, r.Price, r.Stock, r.Category, r.ImageURLs); err != nil {
				s.logger.Warn("Skipping remote product with invalid fields",
					zap.String("external_id", r.ExternalID),
					zap.Error(err),
				)
				continue
			}
			if err := s.productRepo.Save(ctx, local); err != nil {
				return nil, err
			}
			result.Updated++

		case errors.Is(err, shared.ErrNotFound):
			product, err := catalog.NewProduct(r.Title, r.Description, r.Price, r.Stock, r.Category, r.ImageURLs)
			if err != nil {
				s.logger.Warn("Skipping remote product with invalid fields",
					zap.String("external_id", r.ExternalID),
					zap.Error(err),
				)
				continue
			}
			product.LinkExternal(r.ExternalID)
			if err := s.productRepo.Save(ctx, product); err != nil {
				return nil, err
			}
			result.Created++

		default:
			return nil, err
		}
	}

	deleted, err := s.productRepo.DeleteByExternalIDNotIn(ctx, seen)
	if err != nil {
		return nil, err
	}
	result.Deleted = int(deleted)

	s.logger.Info("Catalog sync completed",
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("deleted", result.Deleted),
	)
	return result, nil
}
