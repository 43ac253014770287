// Package catalog implements product management with remote mirroring.
//
// The local database is the source of truth for products. Every write is
// propagated to the commerce platform; a failed propagation on create rolls
// the local write back so the two sides cannot drift silently.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopadmin/backend/internal/domain/catalog"
	"github.com/shopadmin/backend/internal/domain/integration"
	"github.com/shopadmin/backend/internal/domain/shared"
)

// ProductService handles product CRUD and keeps the remote mirror in step
type ProductService struct {
	productRepo catalog.ProductRepository
	platform    integration.CommercePlatform
	logger      *zap.Logger
}

// NewProductService creates a new ProductService. A nil platform disables
// mirroring, products then live only in the local database.
func NewProductService(
	productRepo catalog.ProductRepository,
	platform integration.CommercePlatform,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		platform:    platform,
		logger:      logger,
	}
}

// Create inserts the product locally, mirrors it to the platform, and
// persists the assigned external ID. When the mirror step fails the local
// insert is compensated so no unlinked product is left behind.
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.Name, req.Description, req.Price, req.Stock, req.Category, req.ImageURLs)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	if s.platform != nil {
		externalID, err := s.platform.CreateProduct(ctx, toPush(product))
		if err != nil {
			if delErr := s.productRepo.Delete(ctx, product.ID); delErr != nil {
				s.logger.Error("Failed to roll back local product after mirror failure",
					zap.String("product_id", product.ID.String()),
					zap.Error(delErr),
				)
			}
			return nil, syncFailed("create", err)
		}

		product.LinkExternal(externalID)
		if err := s.productRepo.Save(ctx, product); err != nil {
			return nil, err
		}
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.Stringp("external_id", product.ExternalID),
	)

	response := ToProductResponse(product)
	return &response, nil
}

// Update applies new field values locally and pushes them to the platform.
// A product deleted remotely behind our back is recreated and relinked.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.Update(req.Name, req.Description, req.Price, req.Stock, req.Category, req.ImageURLs); err != nil {
		return nil, err
	}

	// The local update is committed before the mirror call. A remote
	// failure leaves the product updated locally and reports it as
	// partially synced; the next reconciliation converges the two sides.
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	if s.platform != nil && product.IsLinked() {
		err := s.platform.UpdateProduct(ctx, *product.ExternalID, toPush(product))
		if errors.Is(err, integration.ErrRemoteProductNotFound) {
			s.logger.Warn("Remote product vanished, recreating",
				zap.String("product_id", product.ID.String()),
				zap.Stringp("external_id", product.ExternalID),
			)

			externalID, createErr := s.platform.CreateProduct(ctx, toPush(product))
			if createErr != nil {
				return nil, syncFailed("update", createErr)
			}
			product.LinkExternal(externalID)
			if err := s.productRepo.Save(ctx, product); err != nil {
				return nil, err
			}
		} else if err != nil {
			return nil, syncFailed("update", err)
		}
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Delete removes the product remotely first, then locally. A remote copy
// that is already gone does not block the local delete.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if s.platform != nil && product.IsLinked() {
		if err := s.platform.DeleteProduct(ctx, *product.ExternalID); err != nil {
			return syncFailed("delete", err)
		}
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Product deleted", zap.String("product_id", id.String()))
	return nil
}

// GetByID retrieves a product from the local database
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products from the local database with filtering and
// pagination. Listing never touches the platform.
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) (*shared.Paginated[ProductResponse], error) {
	domainFilter := catalog.ProductFilter{
		Filter:   shared.DefaultFilter(),
		Category: filter.Category,
	}
	domainFilter.Search = filter.Search
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	products, total, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, ToProductResponse(&products[i]))
	}

	result := shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// toPush maps local product fields onto the platform payload
func toPush(p *catalog.Product) integration.ProductPush {
	return integration.ProductPush{
		Title:       p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Stock:       p.Stock,
		ImageURLs:   p.ImageURLs,
	}
}

// syncFailed wraps a platform error in the SYNC_FAILED domain error while
// keeping the cause inspectable through errors.Is.
func syncFailed(operation string, cause error) error {
	return fmt.Errorf("%w: %s: %s", shared.ErrSyncFailed, operation, cause)
}
