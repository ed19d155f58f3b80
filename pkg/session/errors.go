package session

import (
	"net/http"

	"github.com/dmitrymomot/benefitskit/core"
)

var (
	// ErrSessionNotFound indicates the request carries no known session.
	ErrSessionNotFound = core.New(core.KindUnauthorized, "session.not_found")

	// ErrSessionExpired indicates the session exceeded the idle timeout.
	ErrSessionExpired = core.New(core.KindUnauthorized, "session.expired")

	// ErrNotAuthenticated is returned by gates for anonymous sessions.
	ErrNotAuthenticated = core.New(core.KindUnauthorized, "session.not_authenticated")

	// ErrNotAdmin is returned by the admin gate for non-admin users.
	ErrNotAdmin = core.New(core.KindUnauthorized, "session.forbidden").WithStatus(http.StatusForbidden)

	// ErrInvalidSession indicates a malformed session was passed to a store.
	ErrInvalidSession = core.New(core.KindUnknown, "session.invalid")

	// ErrTokenGeneration indicates token generation failed.
	ErrTokenGeneration = core.New(core.KindUnknown, "session.token_generation_failed")
)
