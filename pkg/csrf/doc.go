// Package csrf guards state-changing requests with a per-session token.
//
// A token is minted with GenerateToken whenever a session is created or
// regenerated and stored alongside it. For every request whose method is not
// GET, HEAD, OPTIONS or TRACE, the Guard middleware requires the same token
// in the X-CSRF-Token header or the _csrf form field and compares it in
// constant time. Missing or mismatching tokens are answered with
// ErrCSRFRejected (403) before the wrapped handler runs.
//
// When trusted origins are configured the Guard also checks Origin (falling
// back to Referer) of unsafe requests.
//
//	guard := csrf.New(func(r *http.Request) (string, bool) {
//		sess, ok := session.FromContext(r.Context())
//		if !ok {
//			return "", false
//		}
//		return sess.CSRFToken, true
//	}, csrf.WithTrustedOrigins("https://benefits.example.com"))
//
//	r.Use(guard.Middleware)
package csrf
