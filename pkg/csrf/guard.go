package csrf

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrymomot/benefitskit/core"
	"github.com/dmitrymomot/benefitskit/pkg/logger"
)

const (
	DefaultHeaderName = "X-CSRF-Token"
	DefaultFieldName  = "_csrf"
)

// TokenFunc returns the token bound to the request's session.
type TokenFunc func(r *http.Request) (string, bool)

// ErrorHandler writes the response for a rejected request.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Guard is CSRF middleware.
type Guard struct {
	tokenFunc    TokenFunc
	headerName   string
	fieldName    string
	origins      map[string]bool
	errorHandler ErrorHandler
	log          *slog.Logger
}

// Option configures a Guard.
type Option func(*Guard)

// WithHeaderName overrides the request header carrying the token.
func WithHeaderName(name string) Option {
	return func(g *Guard) {
		if name != "" {
			g.headerName = name
		}
	}
}

// WithFieldName overrides the form field carrying the token.
func WithFieldName(name string) Option {
	return func(g *Guard) {
		if name != "" {
			g.fieldName = name
		}
	}
}

// WithTrustedOrigins enables the Origin/Referer check for unsafe methods.
func WithTrustedOrigins(origins ...string) Option {
	return func(g *Guard) {
		for _, o := range origins {
			if o = normalizeOrigin(o); o != "" {
				g.origins[o] = true
			}
		}
	}
}

// WithErrorHandler sets the responder for rejected requests.
func WithErrorHandler(h ErrorHandler) Option {
	return func(g *Guard) {
		if h != nil {
			g.errorHandler = h
		}
	}
}

// WithLogger sets the logger used for rejections.
func WithLogger(log *slog.Logger) Option {
	return func(g *Guard) {
		if log != nil {
			g.log = log
		}
	}
}

// New creates a Guard. Panics if tokenFunc is nil.
func New(tokenFunc TokenFunc, opts ...Option) *Guard {
	if tokenFunc == nil {
		panic("csrf: TokenFunc is required")
	}
	g := &Guard{
		tokenFunc:    tokenFunc,
		headerName:   DefaultHeaderName,
		fieldName:    DefaultFieldName,
		origins:      make(map[string]bool),
		errorHandler: defaultErrorHandler,
		log:          slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Middleware rejects unsafe requests that lack a matching token.
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IsSafeMethod(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		if err := g.Check(r); err != nil {
			g.log.WarnContext(r.Context(), "csrf check failed",
				logger.Component("csrf"),
				logger.Event("csrf.rejected"),
				logger.Error(err),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)
			g.errorHandler(w, r, err)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Check validates the request's origin (when configured) and token.
func (g *Guard) Check(r *http.Request) error {
	if len(g.origins) > 0 && !g.originAllowed(r) {
		return ErrOriginRejected
	}

	expected, ok := g.tokenFunc(r)
	if !ok || !Verify(expected, g.presentedToken(r)) {
		return ErrCSRFRejected
	}
	return nil
}

func (g *Guard) presentedToken(r *http.Request) string {
	if t := r.Header.Get(g.headerName); t != "" {
		return t
	}
	return r.PostFormValue(g.fieldName)
}

// originAllowed checks Origin, then Referer. Requests carrying neither are
// left to the token check.
func (g *Guard) originAllowed(r *http.Request) bool {
	if origin := r.Header.Get("Origin"); origin != "" {
		return g.origins[normalizeOrigin(origin)]
	}
	if referer := r.Header.Get("Referer"); referer != "" {
		return g.origins[normalizeOrigin(referer)]
	}
	return true
}

func normalizeOrigin(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return strings.ToLower(u.Scheme + "://" + u.Host)
}

// IsSafeMethod reports whether method is exempt from CSRF checks.
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	code := core.StatusCode(err)
	http.Error(w, http.StatusText(code), code)
}
