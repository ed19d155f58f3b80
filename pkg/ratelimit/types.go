package ratelimit

import (
	"context"
	"time"
)

// Result contains the result of a rate limit check.
type Result struct {
	// Allowed indicates whether the request is allowed.
	Allowed bool

	// Limit is the maximum number of requests allowed in the window.
	Limit int

	// Remaining is the number of requests remaining in the current window.
	Remaining int

	// ResetAt is when the oldest counted request leaves the window.
	ResetAt time.Time

	// Wait is how long a rejected caller should wait. Zero when allowed.
	Wait time.Duration
}

// RetryAfter returns how long to wait before the next request is allowed.
// Returns 0 if the current request was allowed.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed {
		return 0
	}
	return r.Wait
}

// Err returns an *ExceededError for rejected results and nil otherwise.
func (r *Result) Err() error {
	if r.Allowed {
		return nil
	}
	return &ExceededError{Limit: r.Limit, RetryAfter: r.Wait}
}

// Limiter defines the interface for rate limiting implementations.
type Limiter interface {
	// Allow checks and, if allowed, records a single request for key.
	Allow(ctx context.Context, key string) (*Result, error)

	// Status returns the current state for key without recording.
	Status(ctx context.Context, key string) (*Result, error)

	// Reset clears the history for key.
	Reset(ctx context.Context, key string) error
}

// Window is a store's view of one key's sliding log.
type Window struct {
	// Allowed reports whether the requested entries were recorded.
	Allowed bool

	// Count is the number of entries inside the window after the call.
	Count int

	// Oldest is the timestamp of the oldest entry; zero when empty.
	Oldest time.Time
}

// Store defines the interface for sliding-log storage backends.
type Store interface {
	// Record drops entries older than window, then appends n entries stamped
	// now if count+n <= limit. The whole step is atomic per key.
	Record(ctx context.Context, key string, now time.Time, window time.Duration, limit, n int) (Window, error)

	// Count drops entries older than window and reports what remains.
	Count(ctx context.Context, key string, now time.Time, window time.Duration) (Window, error)

	// Delete removes the given key from the store.
	Delete(ctx context.Context, key string) error
}
