package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shopadmin/backend/internal/domain/shared"
)

// Product is a catalog item owned by the local store. A product may be
// mirrored to the remote commerce platform, in which case ExternalID holds
// the platform's product identifier.
type Product struct {
	shared.BaseEntity
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Stock       int             `gorm:"not null;default:0"`
	Category    string          `gorm:"type:varchar(100);index"`
	ImageURLs   []string        `gorm:"type:jsonb;serializer:json"`
	// ExternalID is nil until the product has been mirrored remotely.
	ExternalID *string `gorm:"type:varchar(64);uniqueIndex"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a product and validates its invariants.
func NewProduct(name, description string, price decimal.Decimal, stock int, category string, imageURLs []string) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product name is required")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product price cannot be negative")
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product stock cannot be negative")
	}

	return &Product{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
		Category:    category,
		ImageURLs:   imageURLs,
	}, nil
}

// Update applies new field values, enforcing the same invariants as NewProduct.
func (p *Product) Update(name, description string, price decimal.Decimal, stock int, category string, imageURLs []string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Product name is required")
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Product price cannot be negative")
	}
	if stock < 0 {
		return shared.NewDomainError("INVALID_INPUT", "Product stock cannot be negative")
	}

	p.Name = name
	p.Description = description
	p.Price = price
	p.Stock = stock
	p.Category = category
	p.ImageURLs = imageURLs
	p.Touch()
	return nil
}

// LinkExternal records the remote platform's identifier for this product.
func (p *Product) LinkExternal(externalID string) {
	p.ExternalID = &externalID
	p.Touch()
}

// UnlinkExternal clears the remote platform identifier.
func (p *Product) UnlinkExternal() {
	p.ExternalID = nil
	p.Touch()
}

// IsLinked reports whether the product has a remote counterpart.
func (p *Product) IsLinked() bool {
	return p.ExternalID != nil && *p.ExternalID != ""
}
