// Package user is the credential store: it creates accounts, verifies
// logins and answers point lookups about users.
//
// Identifiers come from a sequence.Generator ("userId" counter) so they are
// unique and monotonic across processes. Passwords are stored only as bcrypt
// hashes and never leave the package in JSON.
//
// Login failures are reported as two distinct sentinels:
//
//	u, err := svc.ValidateLogin(ctx, name, password)
//	switch {
//	case errors.Is(err, user.ErrNoSuchUser):
//	case errors.Is(err, user.ErrInvalidPassword):
//	}
//
// Both classify as core.KindUnauthorized. Callers facing the network should
// collapse them into one generic message and keep the specific reason for
// their logs.
//
// Stores: MongoStore (users collection, unique userName index) and
// MemoryStore for tests.
package user
