package allocation

import "github.com/dmitrymomot/benefitskit/core"

var (
	ErrInvalidAllocation = core.New(core.KindValidation, "allocation.invalid")
	ErrInvalidThreshold  = core.New(core.KindValidation, "allocation.invalid_threshold")
	ErrNoMatch           = core.New(core.KindNotFound, "allocation.no_match")
)
