package session

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/benefitskit/pkg/logger"
)

type sessionContextKey struct{}

// WithSession adds a session to the context
func WithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, session)
}

// FromContext retrieves a session from the context
func FromContext(ctx context.Context) (*Session, bool) {
	session, ok := ctx.Value(sessionContextKey{}).(*Session)
	return session, ok && session != nil
}

// MustFromContext retrieves a session from the context or panics
func MustFromContext(ctx context.Context) *Session {
	session, ok := FromContext(ctx)
	if !ok {
		panic("session: not found in context")
	}
	return session
}

// UserIDFromContext retrieves the user ID from the session in context
func UserIDFromContext(ctx context.Context) (int64, bool) {
	session, ok := FromContext(ctx)
	if !ok {
		return 0, false
	}
	return session.UserIDValue()
}

// CSRFToken returns the CSRF token of the request's session. It matches
// csrf.TokenFunc.
func CSRFToken(r *http.Request) (string, bool) {
	session, ok := FromContext(r.Context())
	if !ok || session.CSRFToken == "" {
		return "", false
	}
	return session.CSRFToken, true
}

// LoggerExtractor adds the authenticated user ID to log records.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		id, ok := UserIDFromContext(ctx)
		if !ok {
			return slog.Attr{}, false
		}
		return logger.UserID(id), true
	}
}
