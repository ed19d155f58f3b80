package ratelimit

import (
	"fmt"
	"time"

	"github.com/dmitrymomot/benefitskit/core"
)

var (
	ErrRateLimitExceeded = core.New(core.KindRateLimited, "ratelimit.exceeded")
	ErrInvalidLimit      = core.New(core.KindValidation, "ratelimit.invalid_limit")
	ErrInvalidInterval   = core.New(core.KindValidation, "ratelimit.invalid_interval")
	ErrKeyRequired       = core.New(core.KindValidation, "ratelimit.key_required")
	ErrStoreRequired     = core.New(core.KindValidation, "ratelimit.store_required")
)

// ExceededError reports a rejected request with its retry hint.
type ExceededError struct {
	Limit      int
	RetryAfter time.Duration
}

func (e *ExceededError) Error() string {
	return fmt.Sprintf("rate limit of %d exceeded, retry after %s", e.Limit, e.RetryAfter.Round(time.Second))
}

// Unwrap lets errors.Is match ErrRateLimitExceeded.
func (e *ExceededError) Unwrap() error { return ErrRateLimitExceeded }

// ErrorKind implements core classification.
func (e *ExceededError) ErrorKind() core.Kind { return core.KindRateLimited }
