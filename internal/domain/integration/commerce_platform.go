// Package integration defines the port to the remote commerce platform.
// Adapters live under internal/infrastructure and must translate transport
// failures into the sentinel errors declared here.
package integration

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Sentinel errors returned by platform adapters.
var (
	// ErrPlatformUnavailable indicates the platform could not be reached.
	ErrPlatformUnavailable = &PlatformError{Code: "PLATFORM_UNAVAILABLE", Message: "commerce platform is unreachable"}
	// ErrPlatformRequestFailed indicates the platform rejected the request.
	ErrPlatformRequestFailed = &PlatformError{Code: "PLATFORM_REQUEST_FAILED", Message: "commerce platform request failed"}
	// ErrRemoteProductNotFound indicates the referenced product no longer
	// exists on the platform.
	ErrRemoteProductNotFound = &PlatformError{Code: "REMOTE_PRODUCT_NOT_FOUND", Message: "product not found on commerce platform"}
	// ErrInvalidCredentials indicates the access token was rejected.
	ErrInvalidCredentials = &PlatformError{Code: "PLATFORM_INVALID_CREDENTIALS", Message: "commerce platform rejected the access token"}
)

// PlatformError is the error type for platform adapter failures.
type PlatformError struct {
	Code    string
	Message string
}

func (e *PlatformError) Error() string {
	return e.Message
}

// RemoteProduct is the platform's view of a product.
type RemoteProduct struct {
	// ExternalID is the platform-assigned product identifier.
	ExternalID  string
	Title       string
	Description string
	Category    string
	Price       decimal.Decimal
	Stock       int
	ImageURLs   []string
}

// RemoteLineItem is one purchased item within a RemoteOrder.
type RemoteLineItem struct {
	ExternalProductID string
	ExternalVariantID string
	Title             string
	Quantity          int
	Price             decimal.Decimal
}

// RemoteOrder is the platform's view of an order.
type RemoteOrder struct {
	ExternalID        string
	OrderNumber       string
	CustomerName      string
	CustomerEmail     string
	CustomerPhone     string
	TotalPrice        decimal.Decimal
	Currency          string
	FinancialStatus   string
	FulfillmentStatus string
	LineItems         []RemoteLineItem
	PlacedAt          time.Time
}

// ProductPush carries the local fields mirrored to the platform.
type ProductPush struct {
	Title       string
	Description string
	Category    string
	Price       decimal.Decimal
	Stock       int
	ImageURLs   []string
}

// CommercePlatform is the outbound port for the remote platform.
//
// CreateProduct returns the platform-assigned external ID.
// UpdateProduct returns ErrRemoteProductNotFound when the external ID no
// longer exists remotely. DeleteProduct treats an already-deleted remote
// product as success.
type CommercePlatform interface {
	CreateProduct(ctx context.Context, push ProductPush) (string, error)
	UpdateProduct(ctx context.Context, externalID string, push ProductPush) error
	DeleteProduct(ctx context.Context, externalID string) error
	ListProducts(ctx context.Context) ([]RemoteProduct, error)
	ListOrders(ctx context.Context) ([]RemoteOrder, error)
}
