// Package resend delivers mail through the Resend HTTP API.
package resend

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"

	"github.com/diegoclair/monthly-report/internal/mailer"
)

type Config struct {
	APIKey      string
	SenderName  string
	SenderEmail string
}

type emailsClient interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// Sender implements mailer.Sender using the Resend API.
type Sender struct {
	emails emailsClient
	config Config
}

var _ mailer.Sender = (*Sender)(nil)

func New(cfg Config) (*Sender, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: RESEND_API_KEY is required", mailer.ErrConfigMissing)
	}
	if cfg.SenderEmail == "" {
		return nil, fmt.Errorf("%w: resend requires a sender email", mailer.ErrConfigMissing)
	}

	return &Sender{
		emails: resend.NewClient(cfg.APIKey).Emails,
		config: cfg,
	}, nil
}

func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	req := &resend.SendEmailRequest{
		From:    mailer.Recipient(s.config.SenderName, s.config.SenderEmail),
		To:      []string{mailer.Recipient(email.ToName, email.To)},
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
	}

	if _, err := s.emails.SendWithContext(ctx, req); err != nil {
		return fmt.Errorf("resend: failed to send email: %w", err)
	}

	return nil
}
