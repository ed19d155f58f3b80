package allocation

import (
	"cmp"
	"context"
	"slices"
	"sync"
)

// MemoryStore is an in-process Store for tests and local development.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[int64]Allocation
}

// NewMemoryStore creates an empty in-memory allocation store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[int64]Allocation)}
}

func (s *MemoryStore) Upsert(ctx context.Context, a Allocation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[a.UserID] = a
	return nil
}

func (s *MemoryStore) FindByUser(ctx context.Context, userID int64) (*Allocation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.records[userID]
	if !ok {
		return nil, ErrNoMatch
	}
	return &a, nil
}

func (s *MemoryStore) FindStocksAbove(ctx context.Context, threshold int) ([]Allocation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Allocation
	for _, a := range s.records {
		if a.Stocks > threshold {
			out = append(out, a)
		}
	}
	slices.SortFunc(out, func(a, b Allocation) int { return cmp.Compare(a.UserID, b.UserID) })
	return out, nil
}
