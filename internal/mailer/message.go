package mailer

import (
	"fmt"

	"github.com/wneessen/go-mail"
)

// NewMessage composes the MIME message shared by the SMTP and Gmail API
// transports. The From header is left out when fromAddress is empty; Gmail
// fills it with the authorized account.
func NewMessage(fromName, fromAddress string, email *Email) (*mail.Msg, error) {
	msg := mail.NewMsg()

	if fromAddress != "" {
		var err error
		if fromName != "" {
			err = msg.FromFormat(fromName, fromAddress)
		} else {
			err = msg.From(fromAddress)
		}
		if err != nil {
			return nil, fmt.Errorf("invalid sender address %q: %w", fromAddress, err)
		}
	}

	var err error
	if email.ToName != "" {
		err = msg.AddToFormat(email.ToName, email.To)
	} else {
		err = msg.AddTo(email.To)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid recipient address %q: %w", email.To, err)
	}

	msg.Subject(email.Subject)
	msg.SetDate()
	msg.SetMessageID()

	if email.Text != "" {
		msg.SetBodyString(mail.TypeTextPlain, email.Text)
		msg.AddAlternativeString(mail.TypeTextHTML, email.HTML)
	} else {
		msg.SetBodyString(mail.TypeTextHTML, email.HTML)
	}

	return msg, nil
}
