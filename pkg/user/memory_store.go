package user

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"
)

// MemoryStore is an in-process Store for tests and local development.
type MemoryStore struct {
	mu     sync.RWMutex
	byID   map[int64]User
	byName map[string]int64
}

// NewMemoryStore creates an empty in-memory user store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:   make(map[int64]User),
		byName: make(map[string]int64),
	}
}

func (s *MemoryStore) Insert(ctx context.Context, u User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byName[u.UserName]; ok {
		return ErrDuplicateUser
	}
	if _, ok := s.byID[u.ID]; ok {
		return ErrDuplicateUser
	}
	s.byID[u.ID] = u
	s.byName[u.UserName] = u.ID
	return nil
}

func (s *MemoryStore) FindByID(ctx context.Context, id int64) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

func (s *MemoryStore) FindByUserName(ctx context.Context, userName string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byName[userName]
	if !ok {
		return nil, ErrUserNotFound
	}
	u := s.byID[id]
	return &u, nil
}

func (s *MemoryStore) List(ctx context.Context) ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]User, 0, len(s.byID))
	for _, u := range s.byID {
		out = append(out, u)
	}
	slices.SortFunc(out, func(a, b User) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (s *MemoryStore) SetBenefitStartDate(ctx context.Context, id int64, date time.Time) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	u.BenefitStartDate = date
	s.byID[id] = u
	return &u, nil
}

func (s *MemoryStore) SetAdmin(ctx context.Context, id int64, admin bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[id]
	if !ok {
		return ErrUserNotFound
	}
	u.IsAdmin = admin
	s.byID[id] = u
	return nil
}
