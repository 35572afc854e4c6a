package domain

import "errors"

var (
	ErrJobNotFound = errors.New("job not found")
	ErrJobRunning  = errors.New("job is already running")

	// ErrInvalidMonth indicates a month key that is not in "2006-01" form.
	ErrInvalidMonth = errors.New("invalid month")
)
