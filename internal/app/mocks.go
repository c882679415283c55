package app

import (
	"ume_backend/internal/email"
	"ume_backend/internal/logger"
)

// NoopEmailProvider используется при незаполненной SMTP-конфигурации.
// Письма не отправляются, факт отправки только логируется.
type NoopEmailProvider struct{}

func (p *NoopEmailProvider) Send(msg *email.Email) error {
	logger.Warn("Email sending skipped: SMTP is not configured", "to", msg.To, "subject", msg.Subject)
	return nil
}

func (p *NoopEmailProvider) SendPassword(to string, _ string) error {
	logger.Warn("Password email skipped: SMTP is not configured", "to", to)
	return nil
}

func (p *NoopEmailProvider) Validate() error { return nil }
