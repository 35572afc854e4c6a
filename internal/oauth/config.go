package oauth

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	GmailSendScope = "https://www.googleapis.com/auth/gmail.send"

	defaultRedirectURL = "http://localhost"
)

type Config struct {
	ClientID        string
	ClientSecret    string
	AccessToken     string
	RefreshToken    string
	CredentialsFile string
}

// ClientConfig builds the OAuth client from GOOGLE_CLIENT_ID and
// GOOGLE_CLIENT_SECRET, falling back to the credentials file downloaded from
// the Google Cloud console.
func ClientConfig(cfg Config) (*oauth2.Config, error) {
	if cfg.ClientID != "" || cfg.ClientSecret != "" {
		if cfg.ClientID == "" {
			return nil, ErrMissingClientID
		}
		if cfg.ClientSecret == "" {
			return nil, ErrMissingClientSecret
		}
		return &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     google.Endpoint,
			RedirectURL:  defaultRedirectURL,
			Scopes:       []string{GmailSendScope},
		}, nil
	}

	if cfg.CredentialsFile == "" {
		return nil, ErrMissingClientID
	}

	data, err := os.ReadFile(cfg.CredentialsFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: set GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET or provide %s", ErrMissingClientID, cfg.CredentialsFile)
	}
	if err != nil {
		return nil, fmt.Errorf("read credentials file %s: %w", cfg.CredentialsFile, err)
	}

	config, err := google.ConfigFromJSON(data, GmailSendScope)
	if err != nil {
		return nil, fmt.Errorf("parse credentials file %s: %w", cfg.CredentialsFile, err)
	}
	return config, nil
}

// EnvToken returns the token configured through the environment, or nil when
// no refresh token is set. The access token's expiry is unknown, so it is
// treated as expired and refreshed on first use.
func EnvToken(cfg Config) *oauth2.Token {
	if cfg.RefreshToken == "" {
		return nil
	}
	return &oauth2.Token{
		AccessToken:  cfg.AccessToken,
		RefreshToken: cfg.RefreshToken,
		TokenType:    "Bearer",
		Expiry:       time.Unix(0, 0),
	}
}
