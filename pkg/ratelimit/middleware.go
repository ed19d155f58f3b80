package ratelimit

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dmitrymomot/benefitskit/core"
	"github.com/dmitrymomot/benefitskit/pkg/logger"
)

// MiddlewareOption configures middleware behavior.
type MiddlewareOption func(*middlewareConfig)

type middlewareConfig struct {
	failClosed   bool
	errorHandler func(w http.ResponseWriter, r *http.Request, err error)
	skipFunc     func(r *http.Request) bool
	log          *slog.Logger
}

// WithFailClosed denies requests when the store cannot be reached.
func WithFailClosed() MiddlewareOption {
	return func(c *middlewareConfig) {
		c.failClosed = true
	}
}

// WithErrorHandler sets the responder for rejected requests. It receives an
// *ExceededError for limit violations and the store error when failing
// closed.
func WithErrorHandler(fn func(w http.ResponseWriter, r *http.Request, err error)) MiddlewareOption {
	return func(c *middlewareConfig) {
		if fn != nil {
			c.errorHandler = fn
		}
	}
}

// WithSkipFunc sets a function to determine if rate limiting should be skipped.
func WithSkipFunc(fn func(r *http.Request) bool) MiddlewareOption {
	return func(c *middlewareConfig) {
		c.skipFunc = fn
	}
}

// WithLogger sets the logger for rejections and store failures.
func WithLogger(log *slog.Logger) MiddlewareOption {
	return func(c *middlewareConfig) {
		if log != nil {
			c.log = log
		}
	}
}

// Middleware creates HTTP middleware that enforces rate limits using the
// provided Limiter and KeyFunc. Requests without a key pass through.
func Middleware(limiter Limiter, keyFunc KeyFunc, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	if limiter == nil {
		panic("ratelimit.Middleware: limiter is required")
	}
	if keyFunc == nil {
		panic("ratelimit.Middleware: keyFunc is required")
	}

	config := &middlewareConfig{
		errorHandler: defaultErrorHandler,
		log:          slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(config)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if config.skipFunc != nil && config.skipFunc(r) {
				next.ServeHTTP(w, r)
				return
			}

			key := keyFunc(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			result, err := limiter.Allow(r.Context(), key)
			if err != nil {
				config.log.WarnContext(r.Context(), "rate limiter unavailable",
					logger.Component("ratelimit"),
					logger.Error(err),
					slog.Bool("fail_closed", config.failClosed),
				)
				if config.failClosed {
					config.errorHandler(w, r, core.Unavailable(err))
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			SetHeaders(w, result)

			if !result.Allowed {
				config.log.WarnContext(r.Context(), "rate limit exceeded",
					logger.Component("ratelimit"),
					logger.Event("ratelimit.exceeded"),
					slog.String("path", r.URL.Path),
					slog.Int("limit", result.Limit),
				)
				config.errorHandler(w, r, result.Err())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// SetHeaders writes the X-RateLimit-* headers and, for rejections,
// Retry-After in whole seconds (at least 1).
func SetHeaders(w http.ResponseWriter, result *Result) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

	if !result.Allowed {
		retryAfter := int(result.RetryAfter().Seconds() + 0.999)
		w.Header().Set("Retry-After", strconv.Itoa(max(1, retryAfter)))
	}
}

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	code := core.StatusCode(err)
	http.Error(w, http.StatusText(code), code)
}
