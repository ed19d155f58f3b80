package portal

import (
	"log/slog"

	"github.com/dmitrymomot/benefitskit/handler"
	"github.com/dmitrymomot/benefitskit/pkg/logger"
	"github.com/dmitrymomot/benefitskit/pkg/user"
)

type benefitRequest struct {
	UserID           int64  `form:"userId" json:"userId"`
	BenefitStartDate string `form:"benefitStartDate" json:"benefitStartDate"`
}

func (m *Module) listBenefits(ctx handler.Context, _ struct{}) handler.Response {
	users, err := m.users.List(ctx)
	if err != nil {
		return m.fail(ctx, err)
	}
	return handler.JSON(users, csrfMeta(ctx))
}

func (m *Module) updateBenefit(ctx handler.Context, req benefitRequest) handler.Response {
	u, err := m.users.UpdateBenefitStartDate(ctx, req.UserID, req.BenefitStartDate)
	if err != nil {
		return m.fail(ctx, err)
	}

	m.log.InfoContext(ctx, "benefit start date changed",
		logger.Component("portal"),
		logger.Event("benefits.updated"),
		slog.Int64("target_user_id", u.ID),
		slog.String("benefit_start_date", u.BenefitStartDate.Format(user.BenefitDateLayout)),
	)

	return handler.JSON(u, csrfMeta(ctx))
}
