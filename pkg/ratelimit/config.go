package ratelimit

import (
	"fmt"
	"time"
)

// Config holds the limits of the general and authentication limiters.
type Config struct {
	GeneralLimit  int           `env:"RATELIMIT_GENERAL_LIMIT" envDefault:"100"`
	GeneralWindow time.Duration `env:"RATELIMIT_GENERAL_WINDOW" envDefault:"15m"`
	AuthLimit     int           `env:"RATELIMIT_AUTH_LIMIT" envDefault:"5"`
	AuthWindow    time.Duration `env:"RATELIMIT_AUTH_WINDOW" envDefault:"60m"`
	RedisPrefix   string        `env:"RATELIMIT_REDIS_PREFIX" envDefault:"ratelimit:"`
}

// DefaultConfig returns the stock limits: 100 per 15 minutes overall and
// 5 login submissions per hour.
func DefaultConfig() Config {
	return Config{
		GeneralLimit:  100,
		GeneralWindow: 15 * time.Minute,
		AuthLimit:     5,
		AuthWindow:    time.Hour,
		RedisPrefix:   DefaultRedisPrefix,
	}
}

// Limiters groups the two limiters the portal applies.
type Limiters struct {
	General *SlidingWindow
	Auth    *SlidingWindow
}

// NewFromConfig creates the general and auth limiters over one store.
func NewFromConfig(cfg Config, store Store, opts ...Option) (*Limiters, error) {
	general, err := NewSlidingWindow(store, cfg.GeneralLimit, cfg.GeneralWindow, append([]Option{WithName("general")}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("general limiter: %w", err)
	}
	auth, err := NewSlidingWindow(store, cfg.AuthLimit, cfg.AuthWindow, append([]Option{WithName("auth")}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("auth limiter: %w", err)
	}
	return &Limiters{General: general, Auth: auth}, nil
}
