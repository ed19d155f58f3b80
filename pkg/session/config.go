package session

import "time"

// Config holds session configuration
type Config struct {
	// CookieName is the name of the session cookie (default: "sid")
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"sid"`

	// IdleTimeout is the longest allowed gap between two requests
	IdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"30m"`

	// LoginPath is where gates and expiry redirect to
	LoginPath string `env:"SESSION_LOGIN_PATH" envDefault:"/login"`

	// CleanupInterval for expired sessions in the memory store (0 to disable)
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"5m"`

	// SecureCookies enables the Secure flag on session cookies
	SecureCookies bool `env:"SESSION_SECURE_COOKIES" envDefault:"true"`
}

// DefaultConfig returns default session configuration
func DefaultConfig() Config {
	return Config{
		CookieName:      "sid",
		IdleTimeout:     30 * time.Minute,
		LoginPath:       "/login",
		CleanupInterval: 5 * time.Minute,
		SecureCookies:   true,
	}
}

// NewFromConfig creates a new Manager from the provided Config.
// A cookie manager is required for the default cookie transport.
func NewFromConfig(cfg Config, opts ...Option) *Manager {
	return New(append([]Option{WithConfig(cfg)}, opts...)...)
}
