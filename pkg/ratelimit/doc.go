// Package ratelimit implements sliding-log rate limiting keyed by client.
//
// A SlidingWindow allows at most Limit requests per key within any Window:
// the Nth request is allowed when N <= Limit. Check-and-record is a single
// atomic step in every Store, so concurrent requests never over-admit and no
// increment is lost. Rejections carry a retry hint equal to the time until
// the oldest counted request leaves the window.
//
// Stores:
//
//   - MemoryStore keeps timestamps per key behind a per-key mutex. Suitable
//     for a single process and tests.
//   - RedisStore keeps a sorted set per key and runs check-and-record as one
//     Lua script, so every process shares the same counters.
//
// Middleware sets X-RateLimit-Limit, X-RateLimit-Remaining, X-RateLimit-Reset
// and, on rejection, Retry-After. By default it fails open when the store is
// unreachable; WithFailClosed turns store errors into denials.
//
//	auth, _ := ratelimit.NewSlidingWindow(store, 5, time.Hour, ratelimit.WithName("auth"))
//	r.With(ratelimit.Middleware(auth, ratelimit.ClientIPKey(), ratelimit.WithFailClosed())).
//		Post("/login", login)
package ratelimit
