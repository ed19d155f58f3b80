package session

import (
	"context"
	"time"
)

// Store defines the interface for session persistence. Get returns
// ErrSessionNotFound for unknown tokens; infrastructure failures match
// core.ErrStoreUnavailable.
type Store interface {
	// Create stores a new session
	Create(ctx context.Context, session *Session) error

	// Get retrieves a session by token
	Get(ctx context.Context, token string) (*Session, error)

	// UpdateActivity moves the idle window of a session
	UpdateActivity(ctx context.Context, token string, lastActivity, expiresAt time.Time) error

	// Delete removes a session by token
	Delete(ctx context.Context, token string) error

	// DeleteExpired removes all sessions whose expiry is before cutoff
	DeleteExpired(ctx context.Context, cutoff time.Time) error
}

// DefaultRetention is how long an expired session outlives its expiry
// before a sweep may remove it.
const DefaultRetention = 30 * time.Minute

type storeConfig struct {
	retention time.Duration
}

// StoreOption configures the memory and Mongo stores.
type StoreOption func(*storeConfig)

// WithRetention keeps expired sessions for d past their expiry, so requests
// still carrying them are recognised as idle-expired instead of unknown.
func WithRetention(d time.Duration) StoreOption {
	return func(c *storeConfig) {
		if d > 0 {
			c.retention = d
		}
	}
}

func newStoreConfig(opts []StoreOption) storeConfig {
	cfg := storeConfig{retention: DefaultRetention}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
