package logger

import "errors"

// Config holds logger settings loaded from the environment.
type Config struct {
	Environment string `env:"APP_ENV" envDefault:"development"`
	ServiceName string `env:"APP_NAME" envDefault:"benefits-portal"`
	Level       string `env:"LOG_LEVEL"`
	Format      string `env:"LOG_FORMAT"`
}

var (
	ErrInvalidLevel  = errors.New("invalid log level")
	ErrInvalidFormat = errors.New("invalid log format")
)
