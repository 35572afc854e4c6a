package oauth

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/oauth2"
)

// Authorizer obtains a brand new token from the account owner.
type Authorizer interface {
	Authorize(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error)
}

// ConsoleAuthorizer prints the consent URL and reads the authorization code
// pasted back by the operator.
type ConsoleAuthorizer struct {
	In  io.Reader
	Out io.Writer
}

const consentState = "monthly-report"

func (a *ConsoleAuthorizer) Authorize(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	url := config.AuthCodeURL(consentState, oauth2.AccessTypeOffline, oauth2.ApprovalForce)

	fmt.Fprintf(a.Out, "Open the following URL in a browser and authorize Gmail access:\n\n%s\n\nPaste the authorization code: ", url)

	scanner := bufio.NewScanner(a.In)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read authorization code: %w", err)
		}
		return nil, errors.New("no authorization code entered")
	}

	code := strings.TrimSpace(scanner.Text())
	if code == "" {
		return nil, errors.New("no authorization code entered")
	}

	token, err := config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	return token, nil
}
