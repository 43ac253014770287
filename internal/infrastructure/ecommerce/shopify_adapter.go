package ecommerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/shopadmin/backend/internal/domain/integration"
)

// maxResponseSize is the maximum allowed response size from the Shopify API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// listPageSize is the Admin API's maximum page size
const listPageSize = 250

// productVendor is stamped on every product this service mirrors
const productVendor = "Admin Dashboard"

// ShopifyAdapter implements the CommercePlatform port against the Shopify
// Admin REST API
type ShopifyAdapter struct {
	config     *ShopifyConfig
	httpClient *http.Client
}

var _ integration.CommercePlatform = (*ShopifyAdapter)(nil)

// NewShopifyAdapter creates a new Shopify adapter with the given configuration
func NewShopifyAdapter(config *ShopifyConfig) (*ShopifyAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &ShopifyAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}, nil
}

// CreateProduct creates the product remotely and returns its platform ID
func (a *ShopifyAdapter) CreateProduct(ctx context.Context, push integration.ProductPush) (string, error) {
	payload := shopifyProductEnvelope{Product: toShopifyProduct(push)}

	status, body, err := a.doRequest(ctx, http.MethodPost, "/products.json", payload)
	if err != nil {
		return "", err
	}
	if status >= 400 {
		return "", a.statusError(status, body)
	}

	var resp shopifyProductEnvelope
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: failed to parse create response: %v", integration.ErrPlatformRequestFailed, err)
	}
	if resp.Product.ID == 0 {
		return "", fmt.Errorf("%w: create response carried no product id", integration.ErrPlatformRequestFailed)
	}

	return strconv.FormatInt(resp.Product.ID, 10), nil
}

// UpdateProduct updates the remote product. Returns ErrRemoteProductNotFound
// when the product no longer exists on the platform.
func (a *ShopifyAdapter) UpdateProduct(ctx context.Context, externalID string, push integration.ProductPush) error {
	if err := validateExternalID(externalID); err != nil {
		return err
	}

	product := toShopifyProduct(push)
	payload := shopifyProductEnvelope{Product: product}

	status, body, err := a.doRequest(ctx, http.MethodPut, "/products/"+externalID+".json", payload)
	if err != nil {
		return err
	}
	if status == http.StatusNotFound {
		return fmt.Errorf("%w: id %s", integration.ErrRemoteProductNotFound, externalID)
	}
	if status >= 400 {
		return a.statusError(status, body)
	}
	return nil
}

// DeleteProduct removes the remote product. A product already gone from the
// platform counts as success.
func (a *ShopifyAdapter) DeleteProduct(ctx context.Context, externalID string) error {
	if err := validateExternalID(externalID); err != nil {
		return err
	}

	status, body, err := a.doRequest(ctx, http.MethodDelete, "/products/"+externalID+".json", nil)
	if err != nil {
		return err
	}
	if status == http.StatusNotFound {
		return nil
	}
	if status >= 400 {
		return a.statusError(status, body)
	}
	return nil
}

// ListProducts retrieves all products from the platform
func (a *ShopifyAdapter) ListProducts(ctx context.Context) ([]integration.RemoteProduct, error) {
	path := fmt.Sprintf("/products.json?limit=%d", listPageSize)
	status, body, err := a.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if status >= 400 {
		return nil, a.statusError(status, body)
	}

	var resp shopifyProductsEnvelope
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse product listing: %v", integration.ErrPlatformRequestFailed, err)
	}

	products := make([]integration.RemoteProduct, 0, len(resp.Products))
	for _, p := range resp.Products {
		products = append(products, toRemoteProduct(p))
	}
	return products, nil
}

// ListOrders retrieves all orders from the platform, regardless of status
func (a *ShopifyAdapter) ListOrders(ctx context.Context) ([]integration.RemoteOrder, error) {
	path := fmt.Sprintf("/orders.json?status=any&limit=%d", listPageSize)
	status, body, err := a.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if status >= 400 {
		return nil, a.statusError(status, body)
	}

	var resp shopifyOrdersEnvelope
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse order listing: %v", integration.ErrPlatformRequestFailed, err)
	}

	orders := make([]integration.RemoteOrder, 0, len(resp.Orders))
	for _, o := range resp.Orders {
		orders = append(orders, toRemoteOrder(o))
	}
	return orders, nil
}

// doRequest performs one Admin API call and returns the raw status and body.
// Transport failures map to ErrPlatformUnavailable; status handling is left
// to the caller so 404 can keep its operation-specific meaning.
func (a *ShopifyAdapter) doRequest(ctx context.Context, method, path string, payload any) (int, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("shopify: failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.config.BaseURL()+path, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("shopify: failed to create request: %w", err)
	}
	req.Header.Set("X-Shopify-Access-Token", a.config.AccessToken)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", integration.ErrPlatformUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return 0, nil, fmt.Errorf("shopify: failed to read response: %w", err)
	}

	return resp.StatusCode, body, nil
}

// statusError maps an error status code to the matching sentinel
func (a *ShopifyAdapter) statusError(status int, body []byte) error {
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return fmt.Errorf("%w: HTTP %d", integration.ErrInvalidCredentials, status)
	}

	var envelope shopifyErrorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Errors != nil {
		return fmt.Errorf("%w: HTTP %d: %v", integration.ErrPlatformRequestFailed, status, envelope.Errors)
	}
	return fmt.Errorf("%w: HTTP %d", integration.ErrPlatformRequestFailed, status)
}

// validateExternalID rejects IDs that are not numeric platform IDs
func validateExternalID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty product id", integration.ErrRemoteProductNotFound)
	}
	if _, err := strconv.ParseInt(id, 10, 64); err != nil {
		return fmt.Errorf("%w: malformed product id %q", integration.ErrRemoteProductNotFound, id)
	}
	return nil
}

// toShopifyProduct maps the mirror payload onto the Admin API schema
func toShopifyProduct(push integration.ProductPush) shopifyProduct {
	images := make([]shopifyImage, 0, len(push.ImageURLs))
	for i, src := range push.ImageURLs {
		images = append(images, shopifyImage{Src: src, Position: i + 1})
	}

	return shopifyProduct{
		Title:       push.Title,
		BodyHTML:    push.Description,
		Vendor:      productVendor,
		ProductType: push.Category,
		Status:      "active",
		Images:      images,
		Variants: []shopifyVariant{{
			Price:               push.Price.StringFixed(2),
			InventoryQuantity:   push.Stock,
			InventoryManagement: "shopify",
		}},
	}
}

// toRemoteProduct maps an Admin API product to the domain view. Price and
// stock come from the first variant, matching how the mirror writes them.
func toRemoteProduct(p shopifyProduct) integration.RemoteProduct {
	remote := integration.RemoteProduct{
		ExternalID:  strconv.FormatInt(p.ID, 10),
		Title:       p.Title,
		Description: p.BodyHTML,
		Category:    p.ProductType,
	}

	if len(p.Variants) > 0 {
		remote.Price = parseDecimal(p.Variants[0].Price)
		remote.Stock = p.Variants[0].InventoryQuantity
	}
	for _, img := range p.Images {
		if img.Src != "" {
			remote.ImageURLs = append(remote.ImageURLs, img.Src)
		}
	}
	return remote
}

// toRemoteOrder maps an Admin API order to the domain view
func toRemoteOrder(o shopifyOrder) integration.RemoteOrder {
	remote := integration.RemoteOrder{
		ExternalID:        strconv.FormatInt(o.ID, 10),
		OrderNumber:       strconv.FormatInt(o.OrderNumber, 10),
		CustomerName:      customerName(o.Customer),
		TotalPrice:        parseDecimal(o.TotalPrice),
		Currency:          o.Currency,
		FinancialStatus:   o.FinancialStatus,
		FulfillmentStatus: o.FulfillmentStatus,
		PlacedAt:          o.CreatedAt,
	}
	if o.Customer != nil {
		remote.CustomerEmail = o.Customer.Email
		remote.CustomerPhone = o.Customer.Phone
	}

	remote.LineItems = make([]integration.RemoteLineItem, 0, len(o.LineItems))
	for _, item := range o.LineItems {
		remote.LineItems = append(remote.LineItems, integration.RemoteLineItem{
			ExternalProductID: strconv.FormatInt(item.ProductID, 10),
			ExternalVariantID: strconv.FormatInt(item.VariantID, 10),
			Title:             item.Title,
			Quantity:          item.Quantity,
			Price:             parseDecimal(item.Price),
		})
	}
	return remote
}
