package clientip

import "net/http"

// Middleware resolves the client IP once per request and stores it in the context.
func (res *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := SetIPToContext(r.Context(), res.GetIP(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Middleware stores the RemoteAddr-derived client IP in the request context.
func Middleware(next http.Handler) http.Handler {
	return (*Resolver)(nil).Middleware(next)
}
