package sequence

import (
	"context"
	"sync"
)

// MemoryStore keeps counters in process memory. It is only safe when a single
// process issues identifiers, which makes it suitable for tests.
type MemoryStore struct {
	mu       sync.Mutex
	counters map[string]int64
}

// NewMemoryStore creates an empty in-memory counter store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{counters: make(map[string]int64)}
}

func (s *MemoryStore) Next(ctx context.Context, name string) (int64, error) {
	if name == "" {
		return 0, ErrEmptyName
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[name]++
	return s.counters[name], nil
}
