package mailer

import (
	"context"
	"fmt"
)

// Email is a fully rendered message for a single recipient.
type Email struct {
	To      string
	ToName  string
	Subject string
	HTML    string
	Text    string
}

// Sender is implemented by every transport (SMTP, Gmail API, Resend).
type Sender interface {
	Send(ctx context.Context, email *Email) error
}

// Recipient formats a name and address as "Name <address>".
func Recipient(name, address string) string {
	if name == "" {
		return address
	}
	return fmt.Sprintf("%s <%s>", name, address)
}

// DisabledSender stands in for a transport whose configuration is missing.
// Every send fails with ErrConfigMissing so batch jobs log the problem per
// recipient while the rest of the process keeps running.
type DisabledSender struct {
	Reason error
}

func (s DisabledSender) Send(context.Context, *Email) error {
	if s.Reason != nil {
		return fmt.Errorf("%w: %v", ErrConfigMissing, s.Reason)
	}
	return ErrConfigMissing
}
