package session

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/benefitskit/pkg/cookie"
)

// Option is a functional option for configuring the Manager
type Option func(*Manager)

// WithStore sets a custom session store
func WithStore(store Store) Option {
	return func(m *Manager) {
		m.store = store
	}
}

// WithTransport sets a custom session transport
func WithTransport(transport Transport) Option {
	return func(m *Manager) {
		m.transport = transport
	}
}

// WithConfig sets custom configuration. Zero fields keep their defaults.
func WithConfig(config Config) Option {
	return func(m *Manager) {
		if config.CookieName != "" {
			m.config.CookieName = config.CookieName
		}
		if config.IdleTimeout > 0 {
			m.config.IdleTimeout = config.IdleTimeout
		}
		if config.LoginPath != "" {
			m.config.LoginPath = config.LoginPath
		}
		m.config.CleanupInterval = config.CleanupInterval
		m.config.SecureCookies = config.SecureCookies
	}
}

// WithIdleTimeout sets the idle timeout for sessions
func WithIdleTimeout(idle time.Duration) Option {
	return func(m *Manager) {
		if idle > 0 {
			m.config.IdleTimeout = idle
		}
	}
}

// WithLoginPath sets the redirect target of gates and expiry
func WithLoginPath(path string) Option {
	return func(m *Manager) {
		if path != "" {
			m.config.LoginPath = path
		}
	}
}

// WithCookieManager sets the cookie manager for the default cookie transport
func WithCookieManager(cookieMgr *cookie.Manager, opts ...cookie.Option) Option {
	return func(m *Manager) {
		m.cookieManager = cookieMgr
		m.cookieOptions = opts
	}
}

// WithAdminChecker sets the source of the admin flag used by CheckAdmin
func WithAdminChecker(checker AdminChecker) Option {
	return func(m *Manager) {
		m.admin = checker
	}
}

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithLogger sets the logger for session events
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// WithErrorHandler sets the responder used by middlewares for store failures
func WithErrorHandler(h func(w http.ResponseWriter, r *http.Request, err error)) Option {
	return func(m *Manager) {
		if h != nil {
			m.errorHandler = h
		}
	}
}
