package allocation

import "context"

// Store persists allocations. FindByUser returns ErrNoMatch when the user has
// no record; infrastructure failures match core.ErrStoreUnavailable.
type Store interface {
	Upsert(ctx context.Context, a Allocation) error
	FindByUser(ctx context.Context, userID int64) (*Allocation, error)
	FindStocksAbove(ctx context.Context, threshold int) ([]Allocation, error)
}
