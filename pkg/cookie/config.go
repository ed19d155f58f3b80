package cookie

import (
	"net/http"
	"strings"
)

// Config holds cookie manager configuration.
type Config struct {
	Secrets  []string `env:"COOKIE_SECRETS,required" envSeparator:","`
	Path     string   `env:"COOKIE_PATH" envDefault:"/"`
	Domain   string   `env:"COOKIE_DOMAIN"`
	MaxAge   int      `env:"COOKIE_MAX_AGE" envDefault:"86400"`
	Secure   bool     `env:"COOKIE_SECURE" envDefault:"true"`
	SameSite string   `env:"COOKIE_SAME_SITE" envDefault:"strict"`
}

// NewFromConfig creates a Manager from cfg. Cookies are always HttpOnly.
func NewFromConfig(cfg Config, opts ...Option) (*Manager, error) {
	secrets := make([]string, 0, len(cfg.Secrets))
	for _, s := range cfg.Secrets {
		secrets = append(secrets, strings.TrimSpace(s))
	}

	base := []Option{
		WithMaxAge(cfg.MaxAge),
		WithSecure(cfg.Secure),
		WithHTTPOnly(true),
		WithSameSite(parseSameSite(cfg.SameSite)),
	}
	if cfg.Path != "" {
		base = append(base, WithPath(cfg.Path))
	}
	if cfg.Domain != "" {
		base = append(base, WithDomain(cfg.Domain))
	}

	return New(secrets, append(base, opts...)...)
}

func parseSameSite(s string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lax":
		return http.SameSiteLaxMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteStrictMode
	}
}
