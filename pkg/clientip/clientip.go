package clientip

import (
	"net"
	"net/http"
	"strings"
)

// Well-known proxy headers, in the order GetIP consults them when trusted.
const (
	HeaderCFConnectingIP = "CF-Connecting-IP"
	HeaderDOConnectingIP = "DO-Connecting-IP"
	HeaderXForwardedFor  = "X-Forwarded-For"
	HeaderXRealIP        = "X-Real-IP"
)

// Resolver determines the client address of a request.
// The zero value uses only RemoteAddr, which cannot be forged by the client.
type Resolver struct {
	trusted []string
}

// NewResolver returns a Resolver that trusts the given proxy headers, in order,
// before falling back to RemoteAddr. Only list headers that the reverse proxy
// in front of the service overwrites; otherwise clients can pick their own
// address and escape per-address rate limits.
func NewResolver(trustedHeaders ...string) *Resolver {
	hs := make([]string, 0, len(trustedHeaders))
	for _, h := range trustedHeaders {
		if h = strings.TrimSpace(h); h != "" {
			hs = append(hs, http.CanonicalHeaderKey(h))
		}
	}
	return &Resolver{trusted: hs}
}

// NewFromConfig creates a Resolver from environment configuration.
func NewFromConfig(cfg Config) *Resolver {
	return NewResolver(cfg.TrustedHeaders...)
}

// GetIP returns the normalized client IP, or "" when none can be parsed.
func (res *Resolver) GetIP(r *http.Request) string {
	if res != nil {
		for _, h := range res.trusted {
			v := r.Header.Get(h)
			if v == "" {
				continue
			}
			// X-Forwarded-For may list a chain; the first valid entry is the client.
			for ip := range strings.SplitSeq(v, ",") {
				if parsed := parseIP(ip); parsed != "" {
					return parsed
				}
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

// GetIP returns the client IP from RemoteAddr only.
func GetIP(r *http.Request) string {
	return (*Resolver)(nil).GetIP(r)
}

// parseIP validates and normalizes an IP address string.
func parseIP(ipStr string) string {
	ip := net.ParseIP(strings.TrimSpace(ipStr))
	if ip == nil {
		return ""
	}
	return ip.String()
}
