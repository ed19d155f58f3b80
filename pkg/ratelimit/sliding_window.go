package ratelimit

import (
	"context"
	"time"
)

// SlidingWindow implements a sliding window rate limiter that tracks
// individual request timestamps within a moving time window.
type SlidingWindow struct {
	store  Store
	limit  int
	window time.Duration
	prefix string
	now    func() time.Time
}

// Option configures a SlidingWindow.
type Option func(*SlidingWindow)

// WithName namespaces keys so several limiters can share one store.
func WithName(name string) Option {
	return func(sw *SlidingWindow) {
		if name != "" {
			sw.prefix = name + ":"
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(sw *SlidingWindow) {
		if now != nil {
			sw.now = now
		}
	}
}

// NewSlidingWindow creates a new sliding window rate limiter.
func NewSlidingWindow(store Store, limit int, window time.Duration, opts ...Option) (*SlidingWindow, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	if window <= 0 {
		return nil, ErrInvalidInterval
	}

	sw := &SlidingWindow{
		store:  store,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(sw)
	}
	return sw, nil
}

// Limit returns the maximum number of requests per window.
func (sw *SlidingWindow) Limit() int { return sw.limit }

// Window returns the window length.
func (sw *SlidingWindow) Window() time.Duration { return sw.window }

// Allow checks if a single request is allowed for the given key.
func (sw *SlidingWindow) Allow(ctx context.Context, key string) (*Result, error) {
	return sw.AllowN(ctx, key, 1)
}

// AllowN checks if n requests are allowed for the given key and records
// them when they are.
func (sw *SlidingWindow) AllowN(ctx context.Context, key string, n int) (*Result, error) {
	if key == "" {
		return nil, ErrKeyRequired
	}
	if n <= 0 {
		n = 1
	}

	now := sw.now()
	w, err := sw.store.Record(ctx, sw.prefix+key, now, sw.window, sw.limit, n)
	if err != nil {
		return nil, err
	}
	return sw.result(now, w, w.Allowed), nil
}

// Status returns the current rate limit status without recording.
func (sw *SlidingWindow) Status(ctx context.Context, key string) (*Result, error) {
	if key == "" {
		return nil, ErrKeyRequired
	}

	now := sw.now()
	w, err := sw.store.Count(ctx, sw.prefix+key, now, sw.window)
	if err != nil {
		return nil, err
	}
	return sw.result(now, w, w.Count < sw.limit), nil
}

// Reset resets the rate limit for the given key.
func (sw *SlidingWindow) Reset(ctx context.Context, key string) error {
	if key == "" {
		return ErrKeyRequired
	}
	return sw.store.Delete(ctx, sw.prefix+key)
}

func (sw *SlidingWindow) result(now time.Time, w Window, allowed bool) *Result {
	resetAt := now.Add(sw.window)
	if !w.Oldest.IsZero() {
		resetAt = w.Oldest.Add(sw.window)
	}

	r := &Result{
		Allowed:   allowed,
		Limit:     sw.limit,
		Remaining: max(0, sw.limit-w.Count),
		ResetAt:   resetAt,
	}
	if !allowed {
		r.Wait = max(0, resetAt.Sub(now))
	}
	return r
}
