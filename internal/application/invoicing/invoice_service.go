// Package invoicing builds printable PDF invoices for cached orders.
package invoicing

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shopadmin/backend/internal/domain/ordering"
	infraconfig "github.com/shopadmin/backend/internal/infrastructure/config"
	"github.com/shopadmin/backend/internal/infrastructure/pdf"
)

// InvoiceService renders an order into an A4 PDF invoice
type InvoiceService struct {
	orderRepo ordering.OrderRepository
	renderer  pdf.Renderer
	company   infraconfig.InvoiceConfig
	tmpl      *template.Template
	logger    *zap.Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	orderRepo ordering.OrderRepository,
	renderer pdf.Renderer,
	company infraconfig.InvoiceConfig,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		orderRepo: orderRepo,
		renderer:  renderer,
		company:   company,
		tmpl:      template.Must(template.New("invoice").Parse(invoiceTemplate)),
		logger:    logger,
	}
}

// Invoice carries the rendered document and its suggested file name
type Invoice struct {
	PDF      []byte
	Filename string
}

// Render builds the invoice HTML for the order and converts it to PDF
func (s *InvoiceService) Render(ctx context.Context, orderID uuid.UUID) (*Invoice, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	html, err := s.buildHTML(order)
	if err != nil {
		return nil, err
	}

	data, err := s.renderer.RenderPDF(ctx, html)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Invoice rendered",
		zap.String("order_id", orderID.String()),
		zap.Int("bytes", len(data)),
	)

	return &Invoice{
		PDF:      data,
		Filename: fmt.Sprintf("invoice-%s.pdf", invoiceNumber(order)),
	}, nil
}

// buildHTML executes the invoice template for the order
func (s *InvoiceService) buildHTML(order *ordering.Order) (string, error) {
	lines := make([]invoiceLine, 0, len(order.LineItems))
	for _, li := range order.LineItems {
		lines = append(lines, invoiceLine{
			Title:     li.Title,
			Quantity:  li.Quantity,
			UnitPrice: li.Price.StringFixed(2),
			Total:     li.Price.Mul(decimal.NewFromInt(int64(li.Quantity))).StringFixed(2),
		})
	}

	var buf bytes.Buffer
	err := s.tmpl.Execute(&buf, invoiceData{
		CompanyName:    s.company.CompanyName,
		CompanyAddress: s.company.CompanyAddress,
		Number:         invoiceNumber(order),
		Order:          order,
		Lines:          lines,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render invoice template: %w", err)
	}
	return buf.String(), nil
}

// invoiceNumber prefers the human-facing order number over the platform id
func invoiceNumber(order *ordering.Order) string {
	if order.OrderNumber != "" {
		return order.OrderNumber
	}
	return order.ExternalID
}

type invoiceData struct {
	CompanyName    string
	CompanyAddress string
	Number         string
	Order          *ordering.Order
	Lines          []invoiceLine
}

type invoiceLine struct {
	Title     string
	Quantity  int
	UnitPrice string
	Total     string
}

const invoiceTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
  body { font-family: Helvetica, Arial, sans-serif; color: #222; margin: 40px; }
  .header { display: flex; justify-content: space-between; margin-bottom: 32px; }
  .company { font-size: 20px; font-weight: bold; }
  .muted { color: #777; font-size: 12px; }
  h1 { font-size: 24px; margin: 0; }
  table { width: 100%; border-collapse: collapse; margin-top: 24px; }
  th { text-align: left; border-bottom: 2px solid #222; padding: 8px 4px; font-size: 12px; text-transform: uppercase; }
  td { border-bottom: 1px solid #ddd; padding: 8px 4px; font-size: 14px; }
  .amount { text-align: right; }
  .total-row td { border-bottom: none; font-weight: bold; font-size: 16px; padding-top: 16px; }
</style>
</head>
<body>
  <div class="header">
    <div>
      <div class="company">{{.CompanyName}}</div>
      <div class="muted">{{.CompanyAddress}}</div>
    </div>
    <div>
      <h1>Invoice #{{.Number}}</h1>
      <div class="muted">Placed {{.Order.PlacedAt.Format "2006-01-02"}}</div>
      <div class="muted">Status: {{.Order.Status}}</div>
    </div>
  </div>

  <div>
    <strong>Billed to</strong><br>
    {{.Order.CustomerName}}<br>
    {{if .Order.CustomerEmail}}{{.Order.CustomerEmail}}<br>{{end}}
    {{if .Order.CustomerPhone}}{{.Order.CustomerPhone}}{{end}}
  </div>

  <table>
    <thead>
      <tr><th>Item</th><th>Qty</th><th class="amount">Unit Price</th><th class="amount">Total</th></tr>
    </thead>
    <tbody>
      {{range .Lines}}
      <tr>
        <td>{{.Title}}</td>
        <td>{{.Quantity}}</td>
        <td class="amount">{{.UnitPrice}}</td>
        <td class="amount">{{.Total}}</td>
      </tr>
      {{end}}
      <tr class="total-row">
        <td colspan="3">Total ({{.Order.Currency}})</td>
        <td class="amount">{{.Order.TotalPrice.StringFixed 2}}</td>
      </tr>
    </tbody>
  </table>
</body>
</html>`
