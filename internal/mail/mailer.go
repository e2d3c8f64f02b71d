// Package mail sends campaign emails over SMTP.
package mail

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/brightsmile/sdrengine/internal/sanitize"
)

// Config holds SMTP settings.
type Config struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
}

// Mailer sends email via SMTP. Implements dispatch.EmailSender.
type Mailer struct {
	config *Config
	dialer *gomail.Dialer
	logger *zap.Logger
}

// New creates a Mailer.
func New(cfg *Config, logger *zap.Logger) *Mailer {
	return &Mailer{
		config: cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		logger: logger,
	}
}

// SendEmail sends a plain-text email to the given address. The context is
// honored before dialing; gomail itself does not support cancellation
// mid-send.
func (m *Mailer) SendEmail(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.config.FromEmail, m.config.FromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.logger.Debug("email sent",
		zap.String("to", sanitize.Email(to)),
		zap.String("subject", subject),
	)
	return nil
}
