// Package gmail delivers mail through the Gmail API users.messages.send call,
// authorized with an OAuth2 token source.
package gmail

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/diegoclair/monthly-report/internal/mailer"
)

// authenticated user
const me = "me"

type Config struct {
	SenderName string
	// SenderEmail may be empty; Gmail then uses the authorized account.
	SenderEmail string
}

// Sender implements mailer.Sender over the Gmail API.
type Sender struct {
	service *gmailapi.Service
	config  Config
}

var _ mailer.Sender = (*Sender)(nil)

// New creates the Gmail API client. Extra options are appended after the token
// source, which lets tests point the client at a local server.
func New(ctx context.Context, ts oauth2.TokenSource, cfg Config, opts ...option.ClientOption) (*Sender, error) {
	if ts == nil {
		return nil, fmt.Errorf("%w: gmail requires an oauth token source", mailer.ErrConfigMissing)
	}

	opts = append([]option.ClientOption{option.WithTokenSource(ts)}, opts...)
	service, err := gmailapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gmail: failed to create service: %w", err)
	}

	return &Sender{service: service, config: cfg}, nil
}

func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	msg, err := mailer.NewMessage(s.config.SenderName, s.config.SenderEmail, email)
	if err != nil {
		return fmt.Errorf("gmail: %w", err)
	}

	var raw bytes.Buffer
	if _, err := msg.WriteTo(&raw); err != nil {
		return fmt.Errorf("gmail: failed to encode message: %w", err)
	}

	_, err = s.service.Users.Messages.Send(me, &gmailapi.Message{
		Raw: base64.URLEncoding.EncodeToString(raw.Bytes()),
	}).Context(ctx).Do()
	if err != nil {
		if isAuthError(err) {
			return errors.Join(mailer.ErrAuthFailed, err)
		}
		return fmt.Errorf("gmail: failed to send email: %w", err)
	}

	return nil
}

func isAuthError(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden
	}

	var retrieveErr *oauth2.RetrieveError
	return errors.As(err, &retrieveErr)
}
