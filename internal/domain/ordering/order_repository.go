package ordering

import (
	"context"

	"github.com/google/uuid"

	"github.com/shopadmin/backend/internal/domain/shared"
)

// OrderFilter narrows order listings.
type OrderFilter struct {
	shared.Filter
	Status string
}

// OrderRepository is the persistence port for the order cache.
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByExternalID(ctx context.Context, externalID string) (*Order, error)
	FindAll(ctx context.Context, filter OrderFilter) ([]Order, int64, error)
	Save(ctx context.Context, order *Order) error

	// DeleteByExternalIDNotIn removes cached orders whose external ID is
	// not in the given set. An empty set empties the cache. Returns the
	// number of rows removed.
	DeleteByExternalIDNotIn(ctx context.Context, externalIDs []string) (int64, error)
}
