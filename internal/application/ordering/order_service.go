// Package ordering serves the local order cache and its platform sync.
package ordering

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopadmin/backend/internal/domain/integration"
	"github.com/shopadmin/backend/internal/domain/ordering"
	"github.com/shopadmin/backend/internal/domain/shared"
	"github.com/shopadmin/backend/internal/infrastructure/cache"
)

const orderSyncKey = "orders"

// OrderService reads the local order cache and pulls fresh orders from
// the platform. Orders are never written back.
type OrderService struct {
	orderRepo   ordering.OrderRepository
	platform    integration.CommercePlatform
	cooldown    cache.CooldownGuard
	cooldownTTL time.Duration
	logger      *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo ordering.OrderRepository,
	platform integration.CommercePlatform,
	cooldown cache.CooldownGuard,
	cooldownTTL time.Duration,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		platform:    platform,
		cooldown:    cooldown,
		cooldownTTL: cooldownTTL,
		logger:      logger,
	}
}

// List retrieves cached orders with filtering and pagination
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) (*shared.Paginated[OrderResponse], error) {
	domainFilter := ordering.OrderFilter{
		Filter: shared.DefaultFilter(),
		Status: filter.Status,
	}
	domainFilter.Search = filter.Search
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	orders, total, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, ToOrderResponse(&orders[i]))
	}

	result := shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// GetByID retrieves a single cached order
func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// Sync pulls the platform's order listing, upserts the local cache by
// external ID, and prunes cached orders whose external ID is no longer
// in the remote listing. Repeated triggers inside the cooldown window
// are refused.
func (s *OrderService) Sync(ctx context.Context) (*SyncResult, error) {
	if s.platform == nil {
		return nil, shared.NewDomainError("INVALID_STATE", "Commerce platform is not configured")
	}

	acquired, err := s.cooldown.Acquire(ctx, orderSyncKey, s.cooldownTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, shared.ErrRateLimited
	}

	remote, err := s.platform.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list orders: %s", shared.ErrSyncFailed, err)
	}

	result := &SyncResult{}
	seen := make([]string, 0, len(remote))
	for i := range remote {
		r := &remote[i]

		order, err := s.orderRepo.FindByExternalID(ctx, r.ExternalID)
		switch {
		case err == nil:
			result.Updated++
		case errors.Is(err, shared.ErrNotFound):
			order, err = ordering.NewOrder(r.ExternalID, r.OrderNumber)
			if err != nil {
				s.logger.Warn("Skipping remote order with missing id", zap.Error(err))
				continue
			}
			result.Created++
		default:
			return nil, err
		}

		order.ApplyRemote(
			r.CustomerName, r.CustomerEmail, r.CustomerPhone,
			r.TotalPrice, r.Currency, r.FinancialStatus, r.FulfillmentStatus,
			toLineItems(r.LineItems), r.PlacedAt,
		)

		if err := s.orderRepo.Save(ctx, order); err != nil {
			return nil, err
		}
		seen = append(seen, order.ExternalID)
	}

	deleted, err := s.orderRepo.DeleteByExternalIDNotIn(ctx, seen)
	if err != nil {
		return nil, err
	}
	result.Deleted = int(deleted)

	s.logger.Info("Order sync completed",
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("deleted", result.Deleted),
	)
	return result, nil
}

func toLineItems(items []integration.RemoteLineItem) []ordering.LineItem {
	out := make([]ordering.LineItem, 0, len(items))
	for _, li := range items {
		out = append(out, ordering.LineItem{
			ExternalProductID: li.ExternalProductID,
			ExternalVariantID: li.ExternalVariantID,
			Title:             li.Title,
			Quantity:          li.Quantity,
			Price:             li.Price,
		})
	}
	return out
}
