package ecommerce

import (
	"errors"
	"fmt"
	"time"
)

// Default Shopify Admin API settings
const (
	DefaultShopifyAPIVersion = "2024-10"
	DefaultShopifyTimeout    = 30 * time.Second
)

// ShopifyConfig holds the credentials and endpoint settings for one store
type ShopifyConfig struct {
	// StoreName is the myshopify.com subdomain of the store.
	StoreName string
	// AccessToken is the Admin API access token, sent as X-Shopify-Access-Token.
	AccessToken string
	// APIVersion selects the Admin API version path segment.
	APIVersion string
	// Timeout bounds each HTTP call to the platform.
	Timeout time.Duration
	// APIBaseURL overrides the derived base URL. Used in tests.
	APIBaseURL string
}

// Validate checks that the configuration is usable
func (c *ShopifyConfig) Validate() error {
	if c.StoreName == "" && c.APIBaseURL == "" {
		return errors.New("shopify: store name is required")
	}
	if c.AccessToken == "" {
		return errors.New("shopify: access token is required")
	}
	if c.APIVersion == "" {
		c.APIVersion = DefaultShopifyAPIVersion
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultShopifyTimeout
	}
	return nil
}

// BaseURL returns the Admin API base URL for the store
func (c *ShopifyConfig) BaseURL() string {
	if c.APIBaseURL != "" {
		return c.APIBaseURL
	}
	return fmt.Sprintf("https://%s.myshopify.com/admin/api/%s", c.StoreName, c.APIVersion)
}
