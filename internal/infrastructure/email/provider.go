// Package email delivers order notification mails.
package email

import (
	"context"

	"github.com/vatid/backend/internal/infrastructure/config"
)

// Provider sends an HTML message to one or more recipients
type Provider interface {
	Send(ctx context.Context, to []string, subject string, htmlBody string) error
}

// NoOpProvider drops every message
type NoOpProvider struct{}

func (NoOpProvider) Send(context.Context, []string, string, string) error {
	return nil
}

// NewFromConfig returns an SMTP provider, or a NoOpProvider when no SMTP host is configured
func NewFromConfig(cfg config.EmailConfig) Provider {
	if cfg.SMTPHost == "" {
		return NoOpProvider{}
	}
	return NewSMTP(Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	})
}
