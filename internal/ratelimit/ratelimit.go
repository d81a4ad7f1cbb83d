// Package ratelimit paces provider queries with a token bucket.
package ratelimit

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/amishk599/medalerts/internal/model"
)

// NewLimiter returns a token bucket allowing perSecond requests with the given
// burst. perSecond <= 0 means unlimited.
func NewLimiter(perSecond float64, burst int) *rate.Limiter {
	if perSecond <= 0 {
		return rate.NewLimiter(rate.Inf, max(burst, 1))
	}
	return rate.NewLimiter(rate.Limit(perSecond), max(burst, 1))
}

// LimitedSearcher is a decorator that waits for the limiter before delegating
// to the wrapped Searcher. Searchers that share a provider account should
// share one limiter.
type LimitedSearcher struct {
	inner   model.Searcher
	limiter *rate.Limiter
}

var _ model.Searcher = (*LimitedSearcher)(nil)

// NewLimitedSearcher wraps a Searcher with rate limiting.
func NewLimitedSearcher(inner model.Searcher, limiter *rate.Limiter) *LimitedSearcher {
	return &LimitedSearcher{
		inner:   inner,
		limiter: limiter,
	}
}

// Search waits for a token, then delegates.
func (s *LimitedSearcher) Search(ctx context.Context, term, location string, limit int) ([]model.Listing, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait for %q in %s: %w", term, location, err)
	}
	return s.inner.Search(ctx, term, location, limit)
}
