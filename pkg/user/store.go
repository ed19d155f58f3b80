package user

import (
	"context"
	"time"
)

// Store persists users. Implementations return ErrUserNotFound for absent
// records, ErrDuplicateUser when the userName is taken and errors matching
// core.ErrStoreUnavailable for infrastructure failures.
type Store interface {
	Insert(ctx context.Context, u User) error
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByUserName(ctx context.Context, userName string) (*User, error)
	List(ctx context.Context) ([]User, error)
	SetBenefitStartDate(ctx context.Context, id int64, date time.Time) (*User, error)
	SetAdmin(ctx context.Context, id int64, admin bool) error
}
