package binder

import (
	"fmt"
	"net/http"
	"strings"
)

// DefaultMaxMemory is the maximum memory used for parsing multipart forms (1MB).
const DefaultMaxMemory = 1 << 20

// Form creates a binder for application/x-www-form-urlencoded and
// multipart/form-data bodies.
//
// Supported struct tags:
//   - `form:"name"` - binds to form field "name"
//   - `form:"-"`    - skips the field
//
// Requests with any other content type yield ErrBinderNotApplicable.
//
//	type SignupRequest struct {
//		UserName string `form:"userName"`
//		Password string `form:"password"`
//	}
func Form() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		mt := mediaType(r)

		switch {
		case mt == "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
			}
		case strings.HasPrefix(mt, "multipart/form-data"):
			if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
				return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
			}
		default:
			return ErrBinderNotApplicable
		}

		return bindToStruct(v, "form", r.PostForm, ErrFailedToParseForm)
	}
}
