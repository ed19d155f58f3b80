// Package core holds the error taxonomy shared by every domain package.
//
// Domain packages declare sentinel errors with New, tagging each with a Kind
// (validation, not found, conflict, unauthorized, rate limited, unavailable).
// Transport code derives the HTTP status with StatusCode and never needs to
// know which package produced an error.
//
// Infrastructure failures are wrapped with Unavailable so that
// errors.Is(err, ErrStoreUnavailable) holds while the cause stays inspectable:
//
//	if err := coll.FindOne(ctx, filter).Decode(&u); err != nil {
//		return nil, core.Unavailable(err)
//	}
package core
