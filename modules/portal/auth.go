package portal

import (
	"errors"

	"github.com/dmitrymomot/benefitskit/handler"
	"github.com/dmitrymomot/benefitskit/pkg/logger"
	"github.com/dmitrymomot/benefitskit/pkg/session"
	"github.com/dmitrymomot/benefitskit/pkg/user"
)

// formData is the data a login or signup form needs.
type formData struct {
	CSRFToken     string `json:"csrfToken"`
	Authenticated bool   `json:"authenticated"`
}

func (m *Module) home(ctx handler.Context, _ struct{}) handler.Response {
	if _, ok := session.UserIDFromContext(ctx); ok {
		return handler.Redirect(PathDashboard)
	}
	return handler.Redirect(PathLogin)
}

func (m *Module) formPage(ctx handler.Context, _ struct{}) handler.Response {
	sess, _ := session.FromContext(ctx)
	page := formData{Authenticated: sess.IsAuthenticated()}
	if sess != nil {
		page.CSRFToken = sess.CSRFToken
	}
	return handler.JSON(page)
}

func (m *Module) login(ctx handler.Context, req user.LoginForm) handler.Response {
	if err := user.ValidateLoginForm(req); err != nil {
		return m.fail(ctx, err)
	}

	u, err := m.users.ValidateLogin(ctx, req.UserName, req.Password)
	switch {
	case errors.Is(err, user.ErrNoSuchUser), errors.Is(err, user.ErrInvalidPassword):
		m.log.WarnContext(ctx, "login failed",
			logger.Component("portal"),
			logger.Event("auth.login_failed"),
			logger.UserName(req.UserName),
			logger.Reason(err.Error()),
		)
		return handler.JSONError(ErrInvalidCredentials, handler.WithJSONMessage(InvalidCredentialsMessage))
	case err != nil:
		return m.fail(ctx, err)
	}

	if _, err := m.sessions.Regenerate(ctx, ctx.ResponseWriter(), ctx.Request(), u.ID); err != nil {
		return m.fail(ctx, err)
	}

	m.log.InfoContext(ctx, "user signed in",
		logger.Component("portal"),
		logger.Event("auth.login"),
		logger.UserID(u.ID),
	)

	if u.IsAdmin {
		return handler.Redirect(PathBenefits)
	}
	return handler.Redirect(PathDashboard)
}

func (m *Module) signup(ctx handler.Context, req user.SignupForm) handler.Response {
	if err := user.ValidateSignup(req); err != nil {
		return m.fail(ctx, err)
	}

	u, err := m.users.CreateUser(ctx, req.NewUser())
	if err != nil {
		return m.fail(ctx, err)
	}

	// The account exists either way; the dashboard tolerates a missing allocation.
	if _, err := m.allocations.Seed(ctx, u.ID); err != nil {
		m.log.ErrorContext(ctx, "failed to seed allocation",
			logger.Component("portal"),
			logger.UserID(u.ID),
			logger.Error(err),
		)
	}

	if _, err := m.sessions.Regenerate(ctx, ctx.ResponseWriter(), ctx.Request(), u.ID); err != nil {
		return m.fail(ctx, err)
	}

	return handler.Redirect(PathDashboard)
}

func (m *Module) logout(ctx handler.Context, _ struct{}) handler.Response {
	if err := m.sessions.Destroy(ctx, ctx.ResponseWriter(), ctx.Request()); err != nil {
		return m.fail(ctx, err)
	}
	return handler.Redirect(PathLogin)
}
