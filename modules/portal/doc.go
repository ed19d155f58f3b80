// Package portal mounts the benefits portal's HTTP surface.
//
// The module wires the credential store, allocation ledger, session manager,
// CSRF guard and rate limiters behind a chi router and answers with JSON
// bodies and redirects only.
//
// Middleware order, outermost first: request id, client ip, security headers,
// general rate limit, session load, CSRF check. Login submissions also pass
// the authentication limiter, which fails closed.
//
//	m := portal.New(portal.Options{
//		Users:       users,
//		Allocations: allocations,
//		Sessions:    sessions,
//		Limiters:    limiters,
//	})
//	srv.Run(ctx, m.Handle())
//
// Routes:
//
//	GET  /             redirect to /dashboard or /login
//	GET  /login        CSRF token for the login form
//	POST /login        authenticate (auth-limited)
//	GET  /signup       CSRF token for the signup form
//	POST /signup       create an account, seed its allocation, sign in
//	POST /logout       destroy the session
//	GET  /dashboard    profile of the signed-in user
//	GET  /allocations  own allocation, or all above ?threshold=
//	POST /allocations  replace own allocation
//	GET  /benefits     admin: list users with benefit start dates
//	POST /benefits     admin: change a user's benefit start date
//	GET  /health       dependency checks
package portal
