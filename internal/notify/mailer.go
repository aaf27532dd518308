package notify

import (
	"context"
	"fmt"

	mail "github.com/wneessen/go-mail"

	"github.com/kycflow/kycflow-backend/pkg/config"
)

// Mailer sends transactional mail to users.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

var _ Mailer = (*SMTPMailer)(nil)

// SMTPMailer delivers mail over SMTP.
type SMTPMailer struct {
	client *mail.Client
	from   string
}

// NewSMTPMailer creates a mailer for the configured SMTP server.
func NewSMTPMailer(cfg config.SMTPConfig) (*SMTPMailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail client: %w", err)
	}
	return &SMTPMailer{client: client, from: cfg.From}, nil
}

// Send delivers a plain-text message to a single recipient.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}
