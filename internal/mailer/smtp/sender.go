// Package smtp delivers mail through password-authenticated SMTP submission,
// typically Gmail with an app password.
package smtp

import (
	"context"
	"errors"
	"fmt"
	"net/textproto"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/diegoclair/monthly-report/internal/mailer"
)

const (
	DefaultHost = "smtp.gmail.com"
	DefaultPort = 587

	sslPort = 465
)

type Config struct {
	Host        string
	Port        int
	Username    string
	Password    string
	SenderName  string
	SenderEmail string
	Timeout     time.Duration
}

type client interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// Sender implements mailer.Sender over SMTP.
type Sender struct {
	client client
	config Config
}

var _ mailer.Sender = (*Sender)(nil)

// New builds the SMTP client. Missing credentials yield mailer.ErrConfigMissing.
func New(cfg Config) (*Sender, error) {
	if cfg.Username == "" || cfg.Password == "" {
		return nil, fmt.Errorf("%w: smtp username and password are required", mailer.ErrConfigMissing)
	}
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.SenderEmail == "" {
		cfg.SenderEmail = cfg.Username
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
	}
	if cfg.Port == sslPort {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(cfg.Timeout))
	}

	c, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp: failed to create client: %w", err)
	}

	return &Sender{client: c, config: cfg}, nil
}

func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	msg, err := mailer.NewMessage(s.config.SenderName, s.config.SenderEmail, email)
	if err != nil {
		return fmt.Errorf("smtp: %w", err)
	}

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		if isAuthError(err) {
			return errors.Join(mailer.ErrAuthFailed, err)
		}
		return fmt.Errorf("smtp: failed to send email: %w", err)
	}

	return nil
}

// isAuthError reports SMTP 530/534/535 replies, which mean the account or app
// password was rejected.
func isAuthError(err error) bool {
	var protoErr *textproto.Error
	if !errors.As(err, &protoErr) {
		return false
	}
	switch protoErr.Code {
	case 530, 534, 535:
		return true
	}
	return false
}
