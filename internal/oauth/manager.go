// Package oauth manages the Gmail OAuth2 token: loading it from the
// environment or disk, refreshing it, and falling back to an interactive
// authorization when nothing usable is available.
package oauth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/oauth2"
)

type State int

const (
	StateNoToken State = iota
	StateTokenLoaded
	StateTokenRefreshed
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateNoToken:
		return "no_token"
	case StateTokenLoaded:
		return "token_loaded"
	case StateTokenRefreshed:
		return "token_refreshed"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Manager drives the token lifecycle. A nil authorizer means interactive
// authorization is disabled.
type Manager struct {
	config     *oauth2.Config
	store      TokenStore
	envToken   *oauth2.Token
	authorizer Authorizer
	logger     *slog.Logger

	mu     sync.Mutex
	state  State
	source oauth2.TokenSource
	err    error
}

func NewManager(config *oauth2.Config, store TokenStore, envToken *oauth2.Token, authorizer Authorizer, logger *slog.Logger) *Manager {
	return &Manager{
		config:     config,
		store:      store,
		envToken:   envToken,
		authorizer: authorizer,
		logger:     logger,
		state:      StateNoToken,
	}
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Ready returns a token source once a valid token is in hand. A failed
// manager keeps returning its error; it never re-prompts on its own.
func (m *Manager) Ready(ctx context.Context) (oauth2.TokenSource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.state {
	case StateReady:
		return m.source, nil
	case StateFailed:
		return nil, m.err
	}

	token, err := m.obtain(ctx)
	if err != nil {
		m.state = StateFailed
		m.err = err
		m.logger.Error("oauth token unavailable", slog.String("error", err.Error()))
		return nil, err
	}

	// the refresher outlives the startup context
	base := m.config.TokenSource(context.WithoutCancel(ctx), token)
	m.source = newPersistingTokenSource(base, m.store, token, m.logger)
	m.state = StateReady
	m.logger.Info("oauth token ready", slog.Time("expiry", token.Expiry))

	return m.source, nil
}

// obtain tries the env token, then the stored token, refreshing each when
// expired, before falling back to interactive authorization.
func (m *Manager) obtain(ctx context.Context) (*oauth2.Token, error) {
	var refreshErrs []error

	for _, candidate := range m.candidates() {
		token, source := candidate()
		if token == nil {
			continue
		}

		m.state = StateTokenLoaded
		m.logger.Info("oauth token loaded", slog.String("source", source))

		if token.Valid() {
			return token, nil
		}

		if token.RefreshToken != "" {
			refreshed, err := m.refresh(ctx, token)
			if err == nil {
				return refreshed, nil
			}
			refreshErrs = append(refreshErrs, err)
			m.logger.Warn("oauth token refresh failed",
				slog.String("source", source),
				slog.String("error", err.Error()))
		}
		m.state = StateNoToken
	}

	if m.authorizer == nil {
		return nil, errors.Join(append([]error{ErrInteractiveUnavailable}, refreshErrs...)...)
	}

	token, err := m.authorizer.Authorize(ctx, m.config)
	if err != nil {
		return nil, errors.Join(ErrAuthorizeFailed, err)
	}
	m.save(token)

	return token, nil
}

func (m *Manager) candidates() []func() (*oauth2.Token, string) {
	return []func() (*oauth2.Token, string){
		func() (*oauth2.Token, string) {
			return m.envToken, "env"
		},
		m.loadStored,
	}
}

func (m *Manager) loadStored() (*oauth2.Token, string) {
	token, err := m.store.Load()
	if err != nil {
		if !errors.Is(err, ErrNoToken) {
			m.logger.Warn("failed to read stored oauth token", slog.String("error", err.Error()))
		}
		return nil, ""
	}
	return token, "file"
}

func (m *Manager) refresh(ctx context.Context, token *oauth2.Token) (*oauth2.Token, error) {
	refreshed, err := m.config.TokenSource(ctx, token).Token()
	if err != nil {
		return nil, errors.Join(ErrRefreshFailed, err)
	}

	m.state = StateTokenRefreshed
	m.logger.Info("oauth token refreshed")
	m.save(refreshed)

	return refreshed, nil
}

func (m *Manager) save(token *oauth2.Token) {
	if err := m.store.Save(token); err != nil {
		m.logger.Warn("failed to persist oauth token", slog.String("error", err.Error()))
	}
}
