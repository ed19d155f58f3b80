// Package allocation is the ledger of per-user investment splits across
// stocks, funds and bonds.
//
// Every stored record satisfies stocks+funds+bonds == 100 with each part in
// [0,100]; Update rejects anything else with ErrInvalidAllocation before
// touching the store. Writes are full-replace upserts keyed by user id, so
// concurrent writers for the same user resolve last-write-wins and never
// merge fields.
//
// Reads return View values that carry the owner's display names, joined
// through a UserReader:
//
//	views, err := svc.GetByUserAndThreshold(ctx, userID, r.URL.Query().Get("threshold"))
//	switch {
//	case errors.Is(err, allocation.ErrNoMatch):       // nothing found
//	case errors.Is(err, allocation.ErrInvalidThreshold): // malformed query
//	}
package allocation
