package portal

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/benefitskit/core"
	"github.com/dmitrymomot/benefitskit/handler"
	"github.com/dmitrymomot/benefitskit/pkg/allocation"
	"github.com/dmitrymomot/benefitskit/pkg/binder"
	"github.com/dmitrymomot/benefitskit/pkg/clientip"
	"github.com/dmitrymomot/benefitskit/pkg/csrf"
	"github.com/dmitrymomot/benefitskit/pkg/httpserver"
	"github.com/dmitrymomot/benefitskit/pkg/logger"
	"github.com/dmitrymomot/benefitskit/pkg/ratelimit"
	"github.com/dmitrymomot/benefitskit/pkg/requestid"
	"github.com/dmitrymomot/benefitskit/pkg/session"
	"github.com/dmitrymomot/benefitskit/pkg/user"
)

// Default route paths.
const (
	PathLogin     = "/login"
	PathDashboard = "/dashboard"
	PathBenefits  = "/benefits"
)

// DefaultHealthTimeout bounds the dependency checks of /health.
const DefaultHealthTimeout = 3 * time.Second

// Options configures the portal module. Users, Allocations, Sessions and
// Limiters are required; the rest have defaults.
type Options struct {
	Users       user.Service
	Allocations allocation.Service
	Sessions    *session.Manager
	Limiters    *ratelimit.Limiters

	// CSRF defaults to a guard reading the session token.
	CSRF *csrf.Guard
	// ClientIP defaults to a resolver that trusts no proxy headers.
	ClientIP *clientip.Resolver

	HealthChecks  []httpserver.Check
	HealthTimeout time.Duration

	Logger *slog.Logger
}

// Module serves the portal routes.
type Module struct {
	users         user.Service
	allocations   allocation.Service
	sessions      *session.Manager
	limiters      *ratelimit.Limiters
	csrf          *csrf.Guard
	clientIP      *clientip.Resolver
	healthChecks  []httpserver.Check
	healthTimeout time.Duration
	log           *slog.Logger
	errorHandler  handler.ErrorHandler[handler.Context]
}

// New creates the module. Panics when a required dependency is missing.
func New(opts Options) *Module {
	if opts.Users == nil {
		panic("portal: user service is required")
	}
	if opts.Allocations == nil {
		panic("portal: allocation service is required")
	}
	if opts.Sessions == nil {
		panic("portal: session manager is required")
	}
	if opts.Limiters == nil || opts.Limiters.General == nil || opts.Limiters.Auth == nil {
		panic("portal: general and auth limiters are required")
	}

	m := &Module{
		users:         opts.Users,
		allocations:   opts.Allocations,
		sessions:      opts.Sessions,
		limiters:      opts.Limiters,
		csrf:          opts.CSRF,
		clientIP:      opts.ClientIP,
		healthChecks:  opts.HealthChecks,
		healthTimeout: opts.HealthTimeout,
		log:           opts.Logger,
	}

	if m.log == nil {
		m.log = slog.New(slog.DiscardHandler)
	}
	if m.csrf == nil {
		m.csrf = csrf.New(session.CSRFToken,
			csrf.WithErrorHandler(RenderError),
			csrf.WithLogger(m.log),
		)
	}
	if m.clientIP == nil {
		m.clientIP = clientip.NewResolver()
	}
	if m.healthTimeout <= 0 {
		m.healthTimeout = DefaultHealthTimeout
	}
	m.errorHandler = handler.NewErrorHandler(m.log)

	return m
}

// Handle builds the router.
func (m *Module) Handle() http.Handler {
	r := chi.NewRouter()

	r.Use(requestid.Middleware, m.clientIP.Middleware, SecurityHeaders)

	// Health checks bypass rate limits and never create sessions.
	r.Get("/health", httpserver.HealthCheckHandler(m.log, m.healthTimeout, m.healthChecks...))

	r.Group(func(r chi.Router) {
		r.Use(
			ratelimit.Middleware(m.limiters.General, ratelimit.ClientIPKey(),
				ratelimit.WithErrorHandler(RenderError),
				ratelimit.WithLogger(m.log),
			),
			m.sessions.Middleware,
			m.csrf.Middleware,
		)

		r.Get("/", handler.Wrap(m.home, withErrors[struct{}](m)))

		r.Get(PathLogin, handler.Wrap(m.formPage, withErrors[struct{}](m)))
		r.With(ratelimit.Middleware(m.limiters.Auth, ratelimit.ClientIPKey(),
			ratelimit.WithFailClosed(),
			ratelimit.WithErrorHandler(RenderError),
			ratelimit.WithLogger(m.log),
		)).Post(PathLogin, handler.Wrap(m.login, withBody[user.LoginForm](m)...))

		r.Get("/signup", handler.Wrap(m.formPage, withErrors[struct{}](m)))
		r.Post("/signup", handler.Wrap(m.signup, withBody[user.SignupForm](m)...))

		r.Post("/logout", handler.Wrap(m.logout, withErrors[struct{}](m)))

		r.Group(func(r chi.Router) {
			r.Use(m.sessions.RequireAuthenticated)

			r.Get(PathDashboard, handler.Wrap(m.dashboard, withErrors[struct{}](m)))
			r.Get("/allocations", handler.Wrap(m.listAllocations,
				handler.WithBinders[handler.Context, thresholdRequest](binder.Query()),
				withErrors[thresholdRequest](m),
			))
			r.Post("/allocations", handler.Wrap(m.updateAllocation, withBody[allocationRequest](m)...))
		})

		r.Group(func(r chi.Router) {
			r.Use(m.sessions.RequireAdmin)

			r.Get(PathBenefits, handler.Wrap(m.listBenefits, withErrors[struct{}](m)))
			r.Post(PathBenefits, handler.Wrap(m.updateBenefit, withBody[benefitRequest](m)...))
		})
	})

	return r
}

func withErrors[R any](m *Module) handler.WrapOption[handler.Context, R] {
	return handler.WithErrorHandler[handler.Context, R](m.errorHandler)
}

// withBody binds urlencoded, multipart and JSON bodies.
func withBody[R any](m *Module) []handler.WrapOption[handler.Context, R] {
	return []handler.WrapOption[handler.Context, R]{
		handler.WithBinders[handler.Context, R](binder.Form(), binder.JSON()),
		withErrors[R](m),
	}
}

// fail logs err with request context and renders it.
func (m *Module) fail(ctx handler.Context, err error, opts ...handler.JSONOption) handler.Response {
	level := slog.LevelWarn
	if core.StatusCode(err) >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	m.log.LogAttrs(ctx, level, "request failed",
		logger.Component("portal"),
		logger.Error(err),
		slog.String("path", ctx.Request().URL.Path),
	)
	return handler.JSONError(err, opts...)
}

// csrfMeta exposes the session's CSRF token to clients.
func csrfMeta(ctx handler.Context) handler.JSONOption {
	token, _ := session.CSRFToken(ctx.Request())
	return handler.WithJSONMeta(map[string]any{"csrfToken": token})
}
