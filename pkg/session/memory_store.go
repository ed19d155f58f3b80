package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore implements Store using in-memory storage.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	ticker   *time.Ticker
	done     chan struct{}
	once     sync.Once

	retention time.Duration
}

// NewMemoryStore creates a new in-memory session store. A positive
// cleanupInterval starts a goroutine that drops sessions expired for longer
// than the retention; stop it with Close.
func NewMemoryStore(cleanupInterval time.Duration, opts ...StoreOption) *MemoryStore {
	cfg := newStoreConfig(opts)
	store := &MemoryStore{
		sessions:  make(map[string]Session),
		done:      make(chan struct{}),
		retention: cfg.retention,
	}

	if cleanupInterval > 0 {
		store.ticker = time.NewTicker(cleanupInterval)
		go store.cleanupLoop()
	}

	return store
}

func (m *MemoryStore) Create(ctx context.Context, session *Session) error {
	if session == nil || session.Token == "" {
		return ErrInvalidSession
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.Token] = *session
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, token string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[token]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

func (m *MemoryStore) UpdateActivity(ctx context.Context, token string, lastActivity, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[token]
	if !ok {
		return ErrSessionNotFound
	}
	session.LastActivityAt = lastActivity
	session.ExpiresAt = expiresAt
	m.sessions[token] = session
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}

func (m *MemoryStore) DeleteExpired(ctx context.Context, cutoff time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for token, session := range m.sessions {
		if cutoff.After(session.ExpiresAt) {
			delete(m.sessions, token)
		}
	}
	return nil
}

// Len returns the number of stored sessions.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close stops the cleanup goroutine.
func (m *MemoryStore) Close() error {
	m.once.Do(func() {
		if m.ticker != nil {
			m.ticker.Stop()
		}
		close(m.done)
	})
	return nil
}

func (m *MemoryStore) cleanupLoop() {
	for {
		select {
		case now := <-m.ticker.C:
			_ = m.DeleteExpired(context.Background(), now.Add(-m.retention))
		case <-m.done:
			return
		}
	}
}
