// Package clientip resolves the client address of HTTP requests.
//
// The address keys per-client rate limits, so headers are only honoured when
// explicitly trusted:
//
//	res := clientip.NewResolver(clientip.HeaderCFConnectingIP, clientip.HeaderXForwardedFor)
//	r.Use(res.Middleware)
//
//	// later, in a handler or middleware
//	ip := clientip.GetIPFromContext(r.Context())
//
// Without trusted headers (the package-level GetIP and Middleware) only
// RemoteAddr is used. LoggerExtractor adds the address to log records.
package clientip
