package session

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/benefitskit/pkg/logger"
)

// Middleware ensures every request carries a live session in its context.
// Idle-expired sessions are redirected to the login path; store failures go
// to the error handler.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := m.Ensure(r.Context(), w, r)
		if errors.Is(err, ErrSessionExpired) {
			m.redirectToLogin(w, r)
			return
		}
		if err != nil {
			m.log.ErrorContext(r.Context(), "session load failed",
				logger.Component("session"),
				logger.Error(err),
			)
			m.errorHandler(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
	})
}

// RequireAuthenticated redirects anonymous requests to the login path.
func (m *Manager) RequireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, _ := FromContext(r.Context())
		if err := m.CheckAuthenticated(session); err != nil {
			m.redirectToLogin(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin redirects requests whose user is not an admin to the login
// path. A failed admin lookup is denied through the error handler.
func (m *Manager) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, _ := FromContext(r.Context())
		err := m.CheckAdmin(r.Context(), session)
		switch {
		case err == nil:
			next.ServeHTTP(w, r)
		case errors.Is(err, ErrNotAuthenticated), errors.Is(err, ErrNotAdmin):
			m.log.WarnContext(r.Context(), "admin access denied",
				logger.Component("session"),
				logger.Event("session.admin_denied"),
				logger.Reason(err.Error()),
			)
			m.redirectToLogin(w, r)
		default:
			m.log.ErrorContext(r.Context(), "admin check failed",
				logger.Component("session"),
				logger.Error(err),
			)
			m.errorHandler(w, r, err)
		}
	})
}

func (m *Manager) redirectToLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, m.config.LoginPath, http.StatusFound)
}
