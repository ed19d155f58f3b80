package binder

import (
	"net/http"
	"strings"
)

// mediaType returns the request media type without parameters.
func mediaType(r *http.Request) string {
	contentType := r.Header.Get("Content-Type")
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}
