package oauth

import "errors"

var (
	ErrMissingClientID     = errors.New("oauth: client id is not configured")
	ErrMissingClientSecret = errors.New("oauth: client secret is not configured")

	// ErrNoToken indicates no persisted token exists.
	ErrNoToken = errors.New("oauth: no token available")

	// ErrInteractiveUnavailable is returned when a new authorization is needed
	// but the process may not prompt an operator. Not retried.
	ErrInteractiveUnavailable = errors.New("oauth: interactive authorization required but disabled")

	ErrRefreshFailed   = errors.New("oauth: token refresh failed")
	ErrAuthorizeFailed = errors.New("oauth: authorization failed")
)
