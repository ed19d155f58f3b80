package clientip

// Config lists the proxy headers trusted to carry the client address.
type Config struct {
	TrustedHeaders []string `env:"CLIENTIP_TRUSTED_HEADERS" envSeparator:","`
}
