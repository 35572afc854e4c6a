package oauth

import (
	"log/slog"
	"sync"

	"golang.org/x/oauth2"
)

// persistingTokenSource saves every token whose access token differs from the
// last one seen, so runtime refreshes survive a restart.
type persistingTokenSource struct {
	base   oauth2.TokenSource
	store  TokenStore
	logger *slog.Logger

	mu   sync.Mutex
	last string
}

func newPersistingTokenSource(base oauth2.TokenSource, store TokenStore, current *oauth2.Token, logger *slog.Logger) *persistingTokenSource {
	return &persistingTokenSource{
		base:   base,
		store:  store,
		logger: logger,
		last:   current.AccessToken,
	}
}

func (s *persistingTokenSource) Token() (*oauth2.Token, error) {
	token, err := s.base.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if token.AccessToken != s.last {
		s.last = token.AccessToken
		if err := s.store.Save(token); err != nil {
			s.logger.Warn("failed to persist refreshed oauth token", slog.String("error", err.Error()))
		} else {
			s.logger.Info("persisted refreshed oauth token")
		}
	}

	return token, nil
}
