package handler

import (
	"net/http"

	"github.com/dmitrymomot/benefitskit/core"
)

// Package-level errors for common failure scenarios
var (
	// ErrNilResponse indicates a handler returned nil instead of a Response
	ErrNilResponse = core.New(core.KindUnknown, "handler returned nil response")
	// ErrBadRequest is returned when request data cannot be bound.
	ErrBadRequest = core.New(core.KindValidation, "bad_request").WithStatus(http.StatusBadRequest)
)
