package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopadmin/backend/internal/domain/ordering"
)

// OrderListFilter represents filter options for order listings
type OrderListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// LineItemResponse is one purchased item in API responses
type LineItemResponse struct {
	ExternalProductID string          `json:"external_product_id"`
	ExternalVariantID string          `json:"external_variant_id"`
	Title             string          `json:"title"`
	Quantity          int             `json:"quantity"`
	Price             decimal.Decimal `json:"price"`
}

// OrderResponse represents a cached order in API responses
type OrderResponse struct {
	ID                uuid.UUID          `json:"id"`
	ExternalID        string             `json:"external_id"`
	OrderNumber       string             `json:"order_number"`
	CustomerName      string             `json:"customer_name"`
	CustomerEmail     string             `json:"customer_email"`
	CustomerPhone     string             `json:"customer_phone"`
	TotalPrice        decimal.Decimal    `json:"total_price"`
	Currency          string             `json:"currency"`
	Status            string             `json:"status"`
	FulfillmentStatus string             `json:"fulfillment_status"`
	LineItems         []LineItemResponse `json:"line_items"`
	PlacedAt          time.Time          `json:"placed_at"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

// SyncResult reports what an order sync changed
type SyncResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Deleted int `json:"deleted"`
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *ordering.Order) OrderResponse {
	items := make([]LineItemResponse, 0, len(o.LineItems))
	for _, li := range o.LineItems {
		items = append(items, LineItemResponse{
			ExternalProductID: li.ExternalProductID,
			ExternalVariantID: li.ExternalVariantID,
			Title:             li.Title,
			Quantity:          li.Quantity,
			Price:             li.Price,
		})
	}

	return OrderResponse{
		ID:                o.ID,
		ExternalID:        o.ExternalID,
		OrderNumber:       o.OrderNumber,
		CustomerName:      o.CustomerName,
		CustomerEmail:     o.CustomerEmail,
		CustomerPhone:     o.CustomerPhone,
		TotalPrice:        o.TotalPrice,
		Currency:          o.Currency,
		Status:            o.Status,
		FulfillmentStatus: o.FulfillmentStatus,
		LineItems:         items,
		PlacedAt:          o.PlacedAt,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}
