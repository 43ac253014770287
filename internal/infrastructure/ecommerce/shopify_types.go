package ecommerce

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// shopifyImage is one product image in the Admin API schema
type shopifyImage struct {
	Src      string `json:"src"`
	Position int    `json:"position,omitempty"`
}

// shopifyVariant is one product variant in the Admin API schema
type shopifyVariant struct {
	ID                  int64  `json:"id,omitempty"`
	Price               string `json:"price"`
	InventoryQuantity   int    `json:"inventory_quantity"`
	InventoryManagement string `json:"inventory_management,omitempty"`
}

// shopifyProduct is a product in the Admin API schema
type shopifyProduct struct {
	ID          int64            `json:"id,omitempty"`
	Title       string           `json:"title"`
	BodyHTML    string           `json:"body_html"`
	Vendor      string           `json:"vendor,omitempty"`
	ProductType string           `json:"product_type,omitempty"`
	Status      string           `json:"status,omitempty"`
	Images      []shopifyImage   `json:"images,omitempty"`
	Variants    []shopifyVariant `json:"variants,omitempty"`
}

// shopifyProductEnvelope wraps a single product payload
type shopifyProductEnvelope struct {
	Product shopifyProduct `json:"product"`
}

// shopifyProductsEnvelope wraps a product listing payload
type shopifyProductsEnvelope struct {
	Products []shopifyProduct `json:"products"`
}

// shopifyCustomer is the order customer in the Admin API schema
type shopifyCustomer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// shopifyLineItem is one purchased item in the Admin API schema
type shopifyLineItem struct {
	ProductID int64  `json:"product_id"`
	VariantID int64  `json:"variant_id"`
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
}

// shopifyOrder is an order in the Admin API schema
type shopifyOrder struct {
	ID                int64             `json:"id"`
	OrderNumber       int64             `json:"order_number"`
	Customer          *shopifyCustomer  `json:"customer"`
	TotalPrice        string            `json:"total_price"`
	Currency          string            `json:"currency"`
	FinancialStatus   string            `json:"financial_status"`
	FulfillmentStatus string            `json:"fulfillment_status"`
	CreatedAt         time.Time         `json:"created_at"`
	LineItems         []shopifyLineItem `json:"line_items"`
}

// shopifyOrdersEnvelope wraps an order listing payload
type shopifyOrdersEnvelope struct {
	Orders []shopifyOrder `json:"orders"`
}

// shopifyErrorEnvelope carries the platform's error body, which may be a
// string or an object depending on the failure
type shopifyErrorEnvelope struct {
	Errors any `json:"errors"`
}

// parseDecimal converts the platform's string amounts, returning zero for
// empty or malformed values
func parseDecimal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// customerName joins the customer's first and last names
func customerName(c *shopifyCustomer) string {
	if c == nil {
		return ""
	}
	return strings.TrimSpace(strings.TrimSpace(c.FirstName) + " " + strings.TrimSpace(c.LastName))
}
