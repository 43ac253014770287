package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"

	infraconfig "github.com/shopadmin/backend/internal/infrastructure/config"
)

// SMSSender delivers short text messages to a phone number
type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

// messageCreator matches the Twilio message API so tests can stub delivery
type messageCreator interface {
	CreateMessage(params *twilioapi.CreateMessageParams) (*twilioapi.ApiV2010Message, error)
}

// TwilioSMSSender sends SMS through the Twilio REST API
type TwilioSMSSender struct {
	api    messageCreator
	from   string
	logger *zap.Logger
}

// NewTwilioSMSSender creates a sender from Twilio configuration
func NewTwilioSMSSender(cfg *infraconfig.SMSConfig, logger *zap.Logger) (*TwilioSMSSender, error) {
	if !cfg.Enabled() {
		return nil, ErrNotConfigured
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})

	return &TwilioSMSSender{
		api:    client.Api,
		from:   cfg.From,
		logger: logger,
	}, nil
}

// SendSMS delivers a text message to a single phone number
func (s *TwilioSMSSender) SendSMS(ctx context.Context, to, body string) error {
	if to == "" {
		return errors.New("recipient phone number is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &twilioapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	msg, err := s.api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("failed to send sms: %w", err)
	}

	sid := ""
	if msg != nil && msg.Sid != nil {
		sid = *msg.Sid
	}
	s.logger.Info("SMS sent",
		zap.String("to", to),
		zap.String("message_sid", sid),
	)
	return nil
}
