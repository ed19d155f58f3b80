package ratelimit

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"

	"github.com/dmitrymomot/benefitskit/pkg/clientip"
)

// maxKeyLength is the maximum allowed length for a rate limit key
// to prevent excessively long storage keys in backends like Redis.
const maxKeyLength = 64

// KeyFunc extracts a unique identifier from an HTTP request for rate limiting.
type KeyFunc func(*http.Request) string

// ClientIPKey keys requests by client address. The address resolved by the
// clientip middleware is preferred; RemoteAddr is the fallback.
func ClientIPKey() KeyFunc {
	return func(r *http.Request) string {
		ip := clientip.GetIPFromContext(r.Context())
		if ip == "" {
			ip = clientip.GetIP(r)
		}
		return shorten(ip)
	}
}

// shorten hashes keys longer than maxKeyLength to 32 hex chars.
func shorten(key string) string {
	if len(key) <= maxKeyLength {
		return key
	}
	hash := sha256.Sum256([]byte(key))
	return hex.EncodeToString(hash[:16])
}
