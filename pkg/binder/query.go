package binder

import "net/http"

// Query creates a query parameter binder function.
//
// Supported struct tags:
//
//   - `query:"name"` - binds to query parameter "name"
//
//   - `query:"-"`    - skips the field
//
//     type AllocationsRequest struct {
//     Threshold string `query:"threshold"`
//     }
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		return bindToStruct(v, "query", r.URL.Query(), ErrFailedToParseQuery)
	}
}
