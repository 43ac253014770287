// Package ordering holds the local order cache. Orders originate on the
// remote commerce platform and are pulled down read-only; nothing in this
// service ever pushes an order back.
package ordering

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopadmin/backend/internal/domain/shared"
)

// Default values applied when the platform omits a field.
const (
	DefaultCurrency          = "MAD"
	DefaultStatus            = "pending"
	DefaultFulfillmentStatus = "unfulfilled"
)

// LineItem is a single purchased item within an order.
type LineItem struct {
	ExternalProductID string          `json:"external_product_id"`
	ExternalVariantID string          `json:"external_variant_id"`
	Title             string          `json:"title"`
	Quantity          int             `json:"quantity"`
	Price             decimal.Decimal `json:"price"`
}

// Order is a locally cached copy of a platform order.
type Order struct {
	shared.BaseEntity
	// ExternalID is the platform's order identifier, unique locally.
	ExternalID        string          `gorm:"type:varchar(64);not null;uniqueIndex"`
	OrderNumber       string          `gorm:"type:varchar(32);index"`
	CustomerName      string          `gorm:"type:varchar(200)"`
	CustomerEmail     string          `gorm:"type:varchar(255)"`
	CustomerPhone     string          `gorm:"type:varchar(50)"`
	TotalPrice        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Currency          string          `gorm:"type:varchar(8);not null"`
	Status            string          `gorm:"type:varchar(32);not null;index"`
	FulfillmentStatus string          `gorm:"type:varchar(32);not null"`
	LineItems         []LineItem      `gorm:"type:jsonb;serializer:json"`
	PlacedAt          time.Time       `gorm:"index"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a cached order from platform data, filling defaults for
// fields the platform may omit.
func NewOrder(externalID, orderNumber string) (*Order, error) {
	if externalID == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order external ID is required")
	}

	return &Order{
		BaseEntity:        shared.NewBaseEntity(),
		ExternalID:        externalID,
		OrderNumber:       orderNumber,
		Currency:          DefaultCurrency,
		Status:            DefaultStatus,
		FulfillmentStatus: DefaultFulfillmentStatus,
	}, nil
}

// ApplyRemote overwrites the cached fields with fresh platform data. Empty
// platform values fall back to the documented defaults.
func (o *Order) ApplyRemote(customerName, customerEmail, customerPhone string, total decimal.Decimal, currency, status, fulfillment string, items []LineItem, placedAt time.Time) {
	o.CustomerName = customerName
	o.CustomerEmail = customerEmail
	o.CustomerPhone = customerPhone
	o.TotalPrice = total
	o.Currency = orDefault(currency, DefaultCurrency)
	o.Status = orDefault(status, DefaultStatus)
	o.FulfillmentStatus = orDefault(fulfillment, DefaultFulfillmentStatus)
	o.LineItems = items
	o.PlacedAt = placedAt
	o.Touch()
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
