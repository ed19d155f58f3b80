package ratelimit

import (
	"context"
	"slices"
	"sync"
	"time"
)

// MemoryStore implements Store in process memory. Each key has its own
// mutex, so check-and-record on one key never blocks another.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*slidingLog

	cleanupInterval time.Duration
	stopCleanup     chan struct{}
	cleanupOnce     sync.Once
}

type slidingLog struct {
	mu         sync.Mutex
	timestamps []time.Time
	window     time.Duration
	removed    bool
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithCleanupInterval sets the cleanup interval for idle keys.
func WithCleanupInterval(interval time.Duration) MemoryStoreOption {
	return func(s *MemoryStore) {
		if interval > 0 {
			s.cleanupInterval = interval
		}
	}
}

// NewMemoryStore creates a new in-memory store with automatic cleanup.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	s := &MemoryStore{
		windows:         make(map[string]*slidingLog),
		cleanupInterval: time.Minute,
		stopCleanup:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	go s.cleanupLoop()

	return s
}

// lock returns the key's log with its mutex held. A log detached by cleanup
// or Delete is never written to; the lookup is retried instead.
func (s *MemoryStore) lock(key string) *slidingLog {
	for {
		s.mu.Lock()
		l, ok := s.windows[key]
		if !ok {
			l = &slidingLog{}
			s.windows[key] = l
		}
		s.mu.Unlock()

		l.mu.Lock()
		if !l.removed {
			return l
		}
		l.mu.Unlock()
	}
}

// prune drops timestamps that are window or more in the past. Callers hold l.mu.
func (l *slidingLog) prune(now time.Time, window time.Duration) {
	l.window = window
	cutoff := now.Add(-window)
	i := 0
	for i < len(l.timestamps) && !l.timestamps[i].After(cutoff) {
		i++
	}
	l.timestamps = l.timestamps[i:]
}

// insert adds n entries at now, keeping the log ordered when callers read
// the clock before taking the key lock. Callers hold l.mu.
func (l *slidingLog) insert(now time.Time, n int) {
	i := len(l.timestamps)
	for i > 0 && l.timestamps[i-1].After(now) {
		i--
	}
	l.timestamps = slices.Insert(l.timestamps, i, slices.Repeat([]time.Time{now}, n)...)
}

func (l *slidingLog) view(allowed bool) Window {
	w := Window{Allowed: allowed, Count: len(l.timestamps)}
	if len(l.timestamps) > 0 {
		w.Oldest = l.timestamps[0]
	}
	return w
}

func (s *MemoryStore) Record(ctx context.Context, key string, now time.Time, window time.Duration, limit, n int) (Window, error) {
	l := s.lock(key)
	defer l.mu.Unlock()

	l.prune(now, window)
	if len(l.timestamps)+n > limit {
		return l.view(false), nil
	}
	l.insert(now, n)
	return l.view(true), nil
}

func (s *MemoryStore) Count(ctx context.Context, key string, now time.Time, window time.Duration) (Window, error) {
	l := s.lock(key)
	defer l.mu.Unlock()

	l.prune(now, window)
	return l.view(false), nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l, ok := s.windows[key]; ok {
		l.mu.Lock()
		l.removed = true
		l.mu.Unlock()
		delete(s.windows, key)
	}
	return nil
}

// Close stops the cleanup goroutine.
func (s *MemoryStore) Close() error {
	s.cleanupOnce.Do(func() { close(s.stopCleanup) })
	return nil
}

func (s *MemoryStore) cleanupLoop() {
	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			s.cleanup(now)
		case <-s.stopCleanup:
			return
		}
	}
}

// cleanup removes keys whose every entry has left the window.
func (s *MemoryStore) cleanup(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, l := range s.windows {
		l.mu.Lock()
		l.prune(now, l.window)
		if len(l.timestamps) == 0 {
			l.removed = true
			delete(s.windows, key)
		}
		l.mu.Unlock()
	}
}
