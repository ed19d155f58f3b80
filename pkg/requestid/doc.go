// Package requestid tags every request with an identifier that is echoed in
// the X-Request-ID response header and attached to log records.
//
//	r.Use(requestid.Middleware)
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
package requestid
