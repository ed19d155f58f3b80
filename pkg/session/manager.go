package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/benefitskit/core"
	"github.com/dmitrymomot/benefitskit/pkg/cookie"
	"github.com/dmitrymomot/benefitskit/pkg/csrf"
	"github.com/dmitrymomot/benefitskit/pkg/logger"
)

// AdminChecker reports the admin flag of a user.
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID int64) (bool, error)
}

// AdminCheckerFunc adapts a function to AdminChecker.
type AdminCheckerFunc func(ctx context.Context, userID int64) (bool, error)

func (f AdminCheckerFunc) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	return f(ctx, userID)
}

// Manager handles session operations
type Manager struct {
	store         Store
	transport     Transport
	config        Config
	cookieManager *cookie.Manager
	cookieOptions []cookie.Option
	admin         AdminChecker
	now           func() time.Time
	log           *slog.Logger
	errorHandler  func(w http.ResponseWriter, r *http.Request, err error)
}

// New creates a new session manager with the given options.
// Panics when no transport and no cookie manager are configured.
func New(opts ...Option) *Manager {
	m := &Manager{
		config:       DefaultConfig(),
		now:          time.Now,
		log:          slog.New(slog.DiscardHandler),
		errorHandler: defaultErrorHandler,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.store == nil {
		m.store = NewMemoryStore(m.config.CleanupInterval, WithRetention(m.config.IdleTimeout))
	}

	if m.transport == nil {
		if m.cookieManager == nil {
			panic("session: cookie manager is required when using default cookie transport")
		}
		m.transport = NewCookieTransport(m.cookieManager, m.config.CookieName, m.config.SecureCookies, m.cookieOptions...)
	}

	return m
}

// Config returns the effective configuration.
func (m *Manager) Config() Config {
	return m.config
}

// Load returns the live session named by the request without touching it.
// An idle-expired session is deleted and reported as ErrSessionExpired.
func (m *Manager) Load(ctx context.Context, r *http.Request) (*Session, error) {
	token, err := m.transport.GetToken(r)
	if err != nil {
		return nil, ErrSessionNotFound
	}

	session, err := m.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	if session.IdleExpired(m.now(), m.config.IdleTimeout) {
		if err := m.store.Delete(ctx, token); err != nil {
			return nil, err
		}
		m.log.InfoContext(ctx, "session expired",
			logger.Component("session"),
			logger.Event("session.expired"),
			logger.Duration(m.now().Sub(session.LastActivityAt)),
		)
		return nil, ErrSessionExpired
	}

	return session, nil
}

// Ensure returns the request's live session, touching it, or creates an
// anonymous one. For an idle-expired session the cookie is cleared and
// ErrSessionExpired is returned; store failures are returned unchanged.
func (m *Manager) Ensure(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Session, error) {
	session, err := m.Load(ctx, r)
	switch {
	case err == nil:
		now := m.now()
		session.Touch(now, m.config.IdleTimeout)
		if err := m.store.UpdateActivity(ctx, session.Token, session.LastActivityAt, session.ExpiresAt); err != nil {
			return nil, err
		}
		return session, nil

	case errors.Is(err, ErrSessionExpired):
		_ = m.transport.ClearToken(w)
		return nil, err

	case errors.Is(err, ErrSessionNotFound):
		return m.start(ctx, w, nil)

	default:
		return nil, err
	}
}

// Regenerate replaces the request's session with a fresh one bound to
// userID. The previous token is deleted before the new one is issued.
func (m *Manager) Regenerate(ctx context.Context, w http.ResponseWriter, r *http.Request, userID int64) (*Session, error) {
	if token, err := m.transport.GetToken(r); err == nil {
		if err := m.store.Delete(ctx, token); err != nil {
			return nil, err
		}
	}

	session, err := m.start(ctx, w, &userID)
	if err != nil {
		return nil, err
	}

	m.log.InfoContext(ctx, "session regenerated",
		logger.Component("session"),
		logger.Event("session.regenerated"),
		logger.UserID(userID),
	)
	return session, nil
}

// Destroy deletes the request's session and clears the cookie.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if token, err := m.transport.GetToken(r); err == nil {
		if err := m.store.Delete(ctx, token); err != nil {
			return err
		}
	}
	return m.transport.ClearToken(w)
}

// CheckAuthenticated passes for sessions with a user attached.
func (m *Manager) CheckAuthenticated(session *Session) error {
	if !session.IsAuthenticated() {
		return ErrNotAuthenticated
	}
	return nil
}

// CheckAdmin passes when the session's user currently holds the admin flag.
// Lookup failures are returned and must be treated as a denial.
func (m *Manager) CheckAdmin(ctx context.Context, session *Session) error {
	userID, ok := session.UserIDValue()
	if !ok {
		return ErrNotAuthenticated
	}
	if m.admin == nil {
		return ErrNotAdmin
	}

	isAdmin, err := m.admin.IsAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if !isAdmin {
		return ErrNotAdmin
	}
	return nil
}

// Close releases resources held by the default memory store.
func (m *Manager) Close() error {
	if c, ok := m.store.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

func (m *Manager) start(ctx context.Context, w http.ResponseWriter, userID *int64) (*Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}
	csrfToken, err := csrf.GenerateToken()
	if err != nil {
		return nil, err
	}

	session := NewSession(token, csrfToken, userID, m.now(), m.config.IdleTimeout)
	if err := m.store.Create(ctx, session); err != nil {
		return nil, err
	}

	if err := m.transport.SetToken(w, session.Token); err != nil {
		_ = m.store.Delete(ctx, session.Token)
		return nil, err
	}
	return session, nil
}

// generateToken creates a cryptographically secure token
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	code := core.StatusCode(err)
	http.Error(w, http.StatusText(code), code)
}
