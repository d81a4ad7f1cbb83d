// Package retry decorates a Searcher with backoff on transient failures.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/amishk599/medalerts/internal/model"
)

// maxRetryAfter caps how long a provider's Retry-After can stall a run.
const maxRetryAfter = 2 * time.Minute

// RetrySearcher retries transient failures with exponential backoff and
// jitter before giving up and returning the last error.
type RetrySearcher struct {
	inner      model.Searcher
	maxRetries int
	baseDelay  time.Duration
	logger     *slog.Logger
}

var _ model.Searcher = (*RetrySearcher)(nil)

// NewRetrySearcher wraps a Searcher with retry logic.
// maxRetries is the number of additional attempts after the first failure.
// baseDelay is the delay before the first retry, doubled on each subsequent retry.
func NewRetrySearcher(inner model.Searcher, maxRetries int, baseDelay time.Duration, logger *slog.Logger) *RetrySearcher {
	return &RetrySearcher{
		inner:      inner,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		logger:     logger,
	}
}

// Search runs the wrapped search, retrying on 429, 5xx, and network errors.
func (s *RetrySearcher) Search(ctx context.Context, term, location string, limit int) ([]model.Listing, error) {
	listings, err := s.inner.Search(ctx, term, location, limit)
	if err == nil || !isRetryable(err) {
		return listings, err
	}

	lastErr := err
	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		delay := s.backoffDelay(attempt, lastErr)

		s.logger.Warn("retrying search after transient error",
			"term", term,
			"location", location,
			"attempt", attempt,
			"max_retries", s.maxRetries,
			"delay", delay,
			"error", lastErr,
		)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("retry cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}

		listings, err = s.inner.Search(ctx, term, location, limit)
		if err == nil || !isRetryable(err) {
			return listings, err
		}
		lastErr = err
	}

	return nil, lastErr
}

// backoffDelay computes the delay for a given attempt with ±30% jitter.
// A Retry-After from the provider takes precedence, up to maxRetryAfter.
func (s *RetrySearcher) backoffDelay(attempt int, err error) time.Duration {
	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) && httpErr.RetryAfter > 0 {
		return min(httpErr.RetryAfter, maxRetryAfter)
	}

	delay := s.baseDelay << (attempt - 1)

	jitter := float64(delay) * 0.3
	return time.Duration(float64(delay) + (rand.Float64()*2-1)*jitter)
}

// isRetryable returns true if the error represents a transient failure worth retrying.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == http.StatusTooManyRequests || httpErr.StatusCode >= 500
	}

	// Network, DNS, and decode errors.
	return true
}
