package csrf

import (
	"net/http"

	"github.com/dmitrymomot/benefitskit/core"
)

var (
	ErrCSRFRejected    = core.New(core.KindUnauthorized, "csrf.rejected").WithStatus(http.StatusForbidden)
	ErrOriginRejected  = core.New(core.KindUnauthorized, "csrf.origin_rejected").WithStatus(http.StatusForbidden)
	ErrTokenGeneration = core.New(core.KindUnknown, "csrf.token_generation_failed")
)
