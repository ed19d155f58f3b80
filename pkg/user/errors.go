package user

import "github.com/dmitrymomot/benefitskit/core"

var (
	ErrDuplicateUser   = core.New(core.KindConflict, "user.duplicate")
	ErrNoSuchUser      = core.New(core.KindUnauthorized, "user.no_such_user")
	ErrInvalidPassword = core.New(core.KindUnauthorized, "user.invalid_password")
	ErrUserNotFound    = core.New(core.KindNotFound, "user.not_found")

	ErrInvalidBenefitDate = core.New(core.KindValidation, "user.invalid_benefit_start_date")
	ErrFailedToHash       = core.New(core.KindUnknown, "user.password_hash_failed")
)
