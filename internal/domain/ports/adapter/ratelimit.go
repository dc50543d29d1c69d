package adapter

import (
	"context"
	"time"
)

// RateLimiter is a shared fixed-window counter keyed by caller address.
// It lives outside the process so correctness does not depend on a
// single-instance assumption.
type RateLimiter interface {
	// Allow increments the counter for key and reports whether the call
	// is within limit for the current window.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}
