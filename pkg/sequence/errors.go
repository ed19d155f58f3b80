package sequence

import "github.com/dmitrymomot/benefitskit/core"

// ErrEmptyName is returned when Next is called without a counter name.
var ErrEmptyName = core.New(core.KindValidation, "sequence.empty_name")
