package allocation

import (
	"context"

	"github.com/dmitrymomot/benefitskit/pkg/user"
)

// Total is the required sum of the three parts.
const Total = 100

// Allocation is the stored split for one user.
type Allocation struct {
	UserID int64 `bson:"userId" json:"userId"`
	Stocks int   `bson:"stocks" json:"stocks"`
	Funds  int   `bson:"funds" json:"funds"`
	Bonds  int   `bson:"bonds" json:"bonds"`
}

// Valid reports whether every part is within [0,100] and the parts sum to 100.
func (a Allocation) Valid() bool {
	for _, v := range []int{a.Stocks, a.Funds, a.Bonds} {
		if v < 0 || v > Total {
			return false
		}
	}
	return a.Stocks+a.Funds+a.Bonds == Total
}

// View is an allocation annotated with its owner's names.
type View struct {
	Allocation
	UserName  string `json:"userName"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// UserReader resolves allocation owners.
type UserReader interface {
	GetByID(ctx context.Context, id int64) (*user.User, error)
}

func newView(a Allocation, owner *user.User) View {
	v := View{Allocation: a}
	if owner != nil {
		v.UserName = owner.UserName
		v.FirstName = owner.FirstName
		v.LastName = owner.LastName
	}
	return v
}
