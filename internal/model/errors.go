package model

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrCorruptState means the seen-set exists but cannot be read back. It is
	// fatal: resetting to empty would re-notify every listing ever sent.
	ErrCorruptState = errors.New("seen-set state is corrupt")

	// ErrStateLocked means another run holds the seen-set.
	ErrStateLocked = errors.New("seen-set is locked by another run")

	// ErrMissingCredential means a required secret could not be resolved.
	ErrMissingCredential = errors.New("missing credential")
)

// HTTPError wraps an HTTP status code so retry logic can inspect it.
type HTTPError struct {
	StatusCode int
	RetryAfter time.Duration // from Retry-After header, zero if absent
	Err        error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("HTTP %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}
