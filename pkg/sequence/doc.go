// Package sequence hands out monotonically increasing integer identifiers
// from named counters kept in a shared store.
//
// Next performs a single atomic increment with create-on-absent semantics:
// the first call for a name returns 1 and every later call returns the
// previous value plus one, no matter how many processes call concurrently.
// Uniqueness rests entirely on the store's atomic increment; nothing is
// cached or locked in process.
//
//	gen := sequence.NewMongoStore(db)
//	id, err := gen.Next(ctx, "userId")
//	if err != nil {
//		// errors.Is(err, core.ErrStoreUnavailable); never fall back to a made-up id
//		return err
//	}
//
// Backends: MongoStore (counters collection, find-and-modify with upsert),
// RedisStore (INCR) and MemoryStore (single process, tests).
package sequence
