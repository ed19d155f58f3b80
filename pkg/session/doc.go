// Package session tracks who is making a request and for how long they may
// stay idle.
//
// A session is either Anonymous or Authenticated(userID). Admin privilege is
// not a state: gates derive it at check time through an AdminChecker, so a
// revoked admin flag takes effect on the next request.
//
// # Life-cycle
//
//   - Ensure loads the session named by the request's cookie or creates an
//     anonymous one. Every request on a live session moves LastActivityAt
//     forward (sliding idle window).
//   - A session idle for longer than Config.IdleTimeout (30m by default) is
//     deleted server-side; the cookie is cleared and Ensure returns
//     ErrSessionExpired. Exactly IdleTimeout of idleness is still valid.
//   - Regenerate is called after login and signup. It deletes the previous
//     session and mints a new token and CSRF token, so an identifier planted
//     before login never becomes authenticated.
//   - Destroy is called on logout.
//
// # Gates
//
// CheckAuthenticated and CheckAdmin take the session explicitly. The
// RequireAuthenticated and RequireAdmin middlewares redirect to
// Config.LoginPath on failure and never invoke the wrapped handler. A store
// error while resolving the admin flag denies access.
//
// # Storage and transport
//
// MongoStore keys documents by the SHA-256 of the token and relies on a TTL
// index on expiresAt for garbage collection; MemoryStore runs its own cleanup
// loop. Tokens travel in an AES-GCM encrypted, HttpOnly, SameSite=Strict
// cookie managed by pkg/cookie.
package session
