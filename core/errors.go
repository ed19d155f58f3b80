package core

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error so callers can decide how to react without
// knowing which package produced it.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindUnauthorized
	KindRateLimited
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation_failure"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindRateLimited:
		return "rate_limited"
	case KindUnavailable:
		return "store_unavailable"
	default:
		return "unknown"
	}
}

// StatusCode returns the default HTTP status for the kind.
func (k Kind) StatusCode() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified sentinel error. Values are comparable, so errors.Is
// matches them by equality.
//
// The Key field doubles as the message and as a translation key for the
// rendering layer (e.g., "user.not_found").
type Error struct {
	Kind   Kind
	Key    string
	Status int // overrides Kind.StatusCode when non-zero
}

// New creates a classified error.
func New(kind Kind, key string) Error {
	return Error{Kind: kind, Key: key}
}

// WithStatus returns a copy of e that renders with the given HTTP status.
func (e Error) WithStatus(code int) Error {
	e.Status = code
	return e
}

func (e Error) Error() string { return e.Key }

// ErrorKind implements the classification contract used by KindOf.
func (e Error) ErrorKind() Kind { return e.Kind }

// HTTPStatus returns the status code the error should be rendered with.
func (e Error) HTTPStatus() int {
	if e.Status != 0 {
		return e.Status
	}
	return e.Kind.StatusCode()
}

// ErrStoreUnavailable marks a transient infrastructure failure. It is retryable
// and must never be turned into a default value.
var ErrStoreUnavailable = New(KindUnavailable, "store.unavailable")

// Unavailable wraps an infrastructure error so that
// errors.Is(err, ErrStoreUnavailable) holds while the cause stays inspectable.
// Returns nil for a nil error.
func Unavailable(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrStoreUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}

// IsUnavailable reports whether err is a transient store failure.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}

type kinded interface {
	error
	ErrorKind() Kind
}

type statused interface {
	error
	HTTPStatus() int
}

// KindOf returns the kind of the first classified error in err's tree.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var k kinded
	if errors.As(err, &k) {
		return k.ErrorKind()
	}
	return KindUnknown
}

// StatusCode returns the HTTP status for err, 500 for unclassified errors.
func StatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var s statused
	if errors.As(err, &s) {
		return s.HTTPStatus()
	}
	return KindOf(err).StatusCode()
}
