package portal

import (
	"errors"

	"github.com/dmitrymomot/benefitskit/handler"
	"github.com/dmitrymomot/benefitskit/pkg/allocation"
	"github.com/dmitrymomot/benefitskit/pkg/session"
	"github.com/dmitrymomot/benefitskit/pkg/user"
)

type dashboardData struct {
	User       *user.User       `json:"user"`
	Allocation *allocation.View `json:"allocation,omitempty"`
}

type thresholdRequest struct {
	Threshold string `query:"threshold"`
}

// allocationRequest carries the three parts as submitted; the ledger parses them.
type allocationRequest struct {
	Stocks string `form:"stocks" json:"stocks"`
	Funds  string `form:"funds" json:"funds"`
	Bonds  string `form:"bonds" json:"bonds"`
}

func (m *Module) dashboard(ctx handler.Context, _ struct{}) handler.Response {
	id, _ := session.UserIDFromContext(ctx)

	u, err := m.users.GetByID(ctx, id)
	if err != nil {
		return m.fail(ctx, err)
	}

	out := dashboardData{User: u}
	views, err := m.allocations.GetByUserAndThreshold(ctx, id, "")
	switch {
	case err == nil:
		out.Allocation = &views[0]
	case !errors.Is(err, allocation.ErrNoMatch):
		return m.fail(ctx, err)
	}

	return handler.JSON(out, csrfMeta(ctx))
}

func (m *Module) listAllocations(ctx handler.Context, req thresholdRequest) handler.Response {
	id, _ := session.UserIDFromContext(ctx)

	views, err := m.allocations.GetByUserAndThreshold(ctx, id, req.Threshold)
	if err != nil {
		return m.fail(ctx, err)
	}
	return handler.JSON(views, csrfMeta(ctx))
}

func (m *Module) updateAllocation(ctx handler.Context, req allocationRequest) handler.Response {
	id, _ := session.UserIDFromContext(ctx)

	view, err := m.allocations.Update(ctx, id, req.Stocks, req.Funds, req.Bonds)
	if err != nil {
		return m.fail(ctx, err)
	}
	return handler.JSON(view, csrfMeta(ctx))
}
