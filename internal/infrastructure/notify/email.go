// Package notify delivers outbound email and SMS messages.
package notify

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	infraconfig "github.com/shopadmin/backend/internal/infrastructure/config"
)

// ErrNotConfigured is returned when a delivery channel has no credentials
var ErrNotConfigured = errors.New("notification channel is not configured")

// EmailSender delivers plain-text email messages
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// mailDialer matches gomail.Dialer so tests can stub delivery
type mailDialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPEmailSender sends mail through a single SMTP endpoint
type SMTPEmailSender struct {
	dialer mailDialer
	from   string
	logger *zap.Logger
}

// NewSMTPEmailSender creates a sender from SMTP configuration
func NewSMTPEmailSender(cfg *infraconfig.SMTPConfig, logger *zap.Logger) (*SMTPEmailSender, error) {
	if !cfg.Enabled() {
		return nil, ErrNotConfigured
	}

	from := cfg.From
	if from == "" {
		from = cfg.Username
	}

	return &SMTPEmailSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   from,
		logger: logger,
	}, nil
}

// SendEmail delivers a plain-text message to a single recipient
func (s *SMTPEmailSender) SendEmail(ctx context.Context, to, subject, body string) error {
	if to == "" {
		return errors.New("recipient address is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info("Email sent",
		zap.String("to", to),
		zap.String("subject", subject),
	)
	return nil
}
