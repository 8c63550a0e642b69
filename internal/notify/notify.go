// Package notify отправляет письма пользователям.
package notify

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// Message письмо одному получателю
type Message struct {
	To      string
	Subject string
	HTML    string
}

// ResendSender отправляет письма через Resend API
type ResendSender struct {
	client *resend.Client
	from   string
	logger *zap.Logger
}

func NewResendSender(apiKey, from string, logger *zap.Logger) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
		logger: logger,
	}
}

// Send отправляет письмо
func (s *ResendSender) Send(ctx context.Context, msg Message) error {
	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("resend send: %w", err)
	}

	s.logger.Info("Email sent",
		zap.String("message_id", sent.Id),
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return nil
}

// NoopSender только пишет письмо в лог
type NoopSender struct {
	logger *zap.Logger
}

func NewNoopSender(logger *zap.Logger) *NoopSender {
	return &NoopSender{logger: logger}
}

func (s *NoopSender) Send(_ context.Context, msg Message) error {
	s.logger.Info("Email skipped, sender not configured",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return nil
}
