package csrf

// Config holds CSRF guard configuration.
type Config struct {
	HeaderName     string   `env:"CSRF_HEADER_NAME" envDefault:"X-CSRF-Token"`
	FieldName      string   `env:"CSRF_FIELD_NAME" envDefault:"_csrf"`
	TrustedOrigins []string `env:"CSRF_TRUSTED_ORIGINS" envSeparator:","`
}

// NewFromConfig creates a Guard from cfg. Extra options are applied last.
func NewFromConfig(cfg Config, tokenFunc TokenFunc, opts ...Option) *Guard {
	base := []Option{
		WithHeaderName(cfg.HeaderName),
		WithFieldName(cfg.FieldName),
		WithTrustedOrigins(cfg.TrustedOrigins...),
	}
	return New(tokenFunc, append(base, opts...)...)
}
