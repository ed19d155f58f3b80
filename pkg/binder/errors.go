package binder

import "errors"

// Common binding errors
var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrFailedToParseJSON    = errors.New("failed to parse JSON request body")
	ErrFailedToParseForm    = errors.New("failed to parse form data")
	ErrFailedToParseQuery   = errors.New("failed to parse query parameters")

	// ErrBinderNotApplicable is returned when the request carries no data for
	// the binder's source (e.g., a form binder on a JSON request). Callers
	// chaining binders skip it.
	ErrBinderNotApplicable = errors.New("binder not applicable")
)
