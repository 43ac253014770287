package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/shopadmin/backend/internal/domain/shared"
)

// ProductFilter narrows product listings.
type ProductFilter struct {
	shared.Filter
	Category string
}

// ProductRepository is the persistence port for products.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByExternalID(ctx context.Context, externalID string) (*Product, error)
	FindAll(ctx context.Context, filter ProductFilter) ([]Product, int64, error)
	// ListExternalIDs returns the external IDs of all linked products.
	ListExternalIDs(ctx context.Context) ([]string, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteByExternalIDNotIn removes linked products whose external ID is
	// absent from the given set. Returns the number of rows removed.
	DeleteByExternalIDNotIn(ctx context.Context, externalIDs []string) (int64, error)
}
