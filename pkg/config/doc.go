// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv (optional .env files) and
// github.com/caarlos0/env/v11 (struct tag parsing). Every package that needs
// settings declares its own Config struct with `env` tags and defaults, and
// the binary loads them at startup:
//
//	var sessCfg session.Config
//	config.MustLoad(&sessCfg)
//
// Parsed values are cached per type, so repeated loads of the same struct
// are cheap and consistent. Call ResetCache in tests after changing the
// environment.
//
// Errors can be matched with errors.Is against ErrParsingConfig,
// ErrLoadingEnvFile and ErrNilPointer.
package config
