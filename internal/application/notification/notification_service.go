// Package notification sends operator-triggered email and SMS messages,
// including per-order confirmations rendered from the cached order.
package notification

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopadmin/backend/internal/domain/ordering"
	"github.com/shopadmin/backend/internal/domain/shared"
	"github.com/shopadmin/backend/internal/infrastructure/notify"
)

// SendEmailRequest represents an outbound email
type SendEmailRequest struct {
	To      string `json:"to" binding:"required,email"`
	Subject string `json:"subject" binding:"required,min=1,max=200"`
	Body    string `json:"body" binding:"required,min=1,max=10000"`
}

// SendSMSRequest represents an outbound text message
type SendSMSRequest struct {
	To   string `json:"to" binding:"required,e164"`
	Body string `json:"body" binding:"required,min=1,max=1600"`
}

// NotificationService fans requests out to the configured channels.
// A nil sender means the channel is not configured in this deployment.
type NotificationService struct {
	orderRepo ordering.OrderRepository
	email     notify.EmailSender
	sms       notify.SMSSender
	tmpl      *template.Template
	logger    *zap.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(
	orderRepo ordering.OrderRepository,
	email notify.EmailSender,
	sms notify.SMSSender,
	logger *zap.Logger,
) *NotificationService {
	return &NotificationService{
		orderRepo: orderRepo,
		email:     email,
		sms:       sms,
		tmpl:      template.Must(template.New("confirmation").Parse(confirmationTemplate)),
		logger:    logger,
	}
}

// SendEmail delivers an email through the configured provider
func (s *NotificationService) SendEmail(ctx context.Context, req SendEmailRequest) error {
	if s.email == nil {
		return shared.NewDomainError("INVALID_STATE", "Email delivery is not configured")
	}

	if err := s.email.SendEmail(ctx, req.To, req.Subject, req.Body); err != nil {
		s.logger.Error("Email delivery failed", zap.Error(err))
		return fmt.Errorf("%w: %s", shared.ErrNotifyFailed, err)
	}
	return nil
}

// SendSMS delivers a text message through the configured provider
func (s *NotificationService) SendSMS(ctx context.Context, req SendSMSRequest) error {
	if s.sms == nil {
		return shared.NewDomainError("INVALID_STATE", "SMS delivery is not configured")
	}

	if err := s.sms.SendSMS(ctx, req.To, req.Body); err != nil {
		s.logger.Error("SMS delivery failed", zap.Error(err))
		return fmt.Errorf("%w: %s", shared.ErrNotifyFailed, err)
	}
	return nil
}

// SendOrderConfirmationEmail renders the confirmation for a cached order
// and mails it to the order's customer.
func (s *NotificationService) SendOrderConfirmationEmail(ctx context.Context, orderID uuid.UUID) error {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.CustomerEmail == "" {
		return shared.NewDomainError("INVALID_INPUT", "Customer email not found")
	}

	body, err := s.buildConfirmationHTML(order)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Order Confirmation - #%s", order.OrderNumber)
	if err := s.SendEmail(ctx, SendEmailRequest{To: order.CustomerEmail, Subject: subject, Body: body}); err != nil {
		return err
	}

	s.logger.Info("Order confirmation email sent",
		zap.String("order_id", orderID.String()))
	return nil
}

// SendOrderConfirmationSMS texts the confirmation to the order's customer.
func (s *NotificationService) SendOrderConfirmationSMS(ctx context.Context, orderID uuid.UUID) error {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.CustomerPhone == "" {
		return shared.NewDomainError("INVALID_INPUT", "Customer phone number not found")
	}

	if err := s.SendSMS(ctx, SendSMSRequest{To: order.CustomerPhone, Body: confirmationText(order)}); err != nil {
		return err
	}

	s.logger.Info("Order confirmation SMS sent",
		zap.String("order_id", orderID.String()))
	return nil
}

func (s *NotificationService) buildConfirmationHTML(order *ordering.Order) (string, error) {
	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, order); err != nil {
		return "", fmt.Errorf("failed to render confirmation template: %w", err)
	}
	return buf.String(), nil
}

// confirmationText builds the plain-text SMS variant of the confirmation.
func confirmationText(order *ordering.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order Confirmation #%s\n", order.OrderNumber)
	if order.CustomerName != "" {
		fmt.Fprintf(&b, "Dear %s,\n", order.CustomerName)
	}
	b.WriteString("Thank you for your order!\n")
	fmt.Fprintf(&b, "- Date: %s\n", order.PlacedAt.Format("2006-01-02"))
	fmt.Fprintf(&b, "- Total: %s %s\n", order.TotalPrice.StringFixed(2), order.Currency)
	fmt.Fprintf(&b, "- Payment Status: %s\n", order.Status)
	fmt.Fprintf(&b, "- Fulfillment Status: %s\n", order.FulfillmentStatus)
	if len(order.LineItems) > 0 {
		b.WriteString("Items:\n")
		for _, li := range order.LineItems {
			fmt.Fprintf(&b, "- %s (Qty: %d, Price: %s %s)\n",
				li.Title, li.Quantity, li.Price.StringFixed(2), order.Currency)
		}
	}
	b.WriteString("We will notify you once your order has shipped.")
	return b.String()
}

const confirmationTemplate = `<h1>Order Confirmation</h1>
<p>Dear {{.CustomerName}},</p>
<p>Thank you for your order! Here are the details:</p>
<ul>
  <li>Order Number: #{{.OrderNumber}}</li>
  <li>Date: {{.PlacedAt.Format "2006-01-02"}}</li>
  <li>Total: {{.TotalPrice.StringFixed 2}} {{.Currency}}</li>
  <li>Payment Status: {{.Status}}</li>
  <li>Fulfillment Status: {{.FulfillmentStatus}}</li>
</ul>
<h2>Items:</h2>
<ul>
  {{range .LineItems}}
  <li>{{.Title}} - Quantity: {{.Quantity}} - Price: {{.Price.StringFixed 2}} {{$.Currency}}</li>
  {{end}}
</ul>
<p>We will notify you once your order has shipped.</p>`
