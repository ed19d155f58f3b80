package portal_test

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/benefitskit/modules/portal"
	"github.com/dmitrymomot/benefitskit/pkg/allocation"
	"github.com/dmitrymomot/benefitskit/pkg/httpserver"
	"github.com/dmitrymomot/benefitskit/pkg/user"
)

func TestNew_PanicsWithoutDependencies(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { portal.New(portal.Options{}) })
}

func TestHome_RedirectsAnonymousToLogin(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	r := h.get("/")
	assert.Equal(t, http.StatusSeeOther, r.status)
	assert.Equal(t, portal.PathLogin, r.location)
}

func TestSecurityHeaders(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	r := h.get(portal.PathLogin)
	assert.Equal(t, "nosniff", r.header.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", r.header.Get("X-Frame-Options"))
	assert.NotEmpty(t, r.header.Get("Content-Security-Policy"))
	assert.NotEmpty(t, r.header.Get("X-Request-ID"))
	assert.Equal(t, "100", r.header.Get("X-RateLimit-Limit"))
}

func TestSignupFlow(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	anonToken := h.formToken("/signup")

	r := h.post("/signup", signupForm("ada_l"), anonToken)
	require.Equal(t, http.StatusSeeOther, r.status)
	assert.Equal(t, portal.PathDashboard, r.location)

	r = h.get(portal.PathDashboard)
	require.Equal(t, http.StatusOK, r.status)

	var dash struct {
		User       user.User        `json:"user"`
		Allocation *allocation.View `json:"allocation"`
	}
	r.data(t, &dash)
	assert.Equal(t, int64(1), dash.User.ID)
	assert.Equal(t, "ada_l", dash.User.UserName)
	assert.False(t, dash.User.IsAdmin)
	require.NotNil(t, dash.Allocation, "signup seeds an allocation")
	assert.Equal(t, allocation.Total, dash.Allocation.Stocks+dash.Allocation.Funds+dash.Allocation.Bonds)

	token := r.csrfToken(t)
	assert.NotEqual(t, anonToken, token, "csrf token is rotated at sign-in")

	r = h.get("/")
	assert.Equal(t, portal.PathDashboard, r.location)
}

func TestSignup_Validation(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	form := signupForm("x")
	form.Set("verify", "Different1")

	r := h.post("/signup", form, h.formToken("/signup"))
	require.Equal(t, http.StatusBadRequest, r.status)
	require.NotNil(t, r.body.Error)
	assert.Contains(t, r.body.Error.Details, "userName")
	assert.Contains(t, r.body.Error.Details, "verify")
}

func TestSignup_DuplicateUser(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.createUser("taken", false)

	r := h.post("/signup", signupForm("taken"), h.formToken("/signup"))
	require.Equal(t, http.StatusConflict, r.status)
	assert.Equal(t, "user.duplicate", r.body.Error.Code)
}

func TestLogin_RedirectsByRole(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		admin bool
		want  string
	}{
		{name: "regular user", admin: false, want: portal.PathDashboard},
		{name: "admin", admin: true, want: portal.PathBenefits},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := newHarness(t)
			h.createUser("someone", tt.admin)

			r := h.login("someone", validPassword)
			assert.Equal(t, http.StatusSeeOther, r.status)
			assert.Equal(t, tt.want, r.location)
		})
	}
}

func TestLogin_GenericFailure(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.createUser("grace", false)

	unknown := h.login("nobody", validPassword)
	wrong := h.login("grace", "Wrong1234")

	for _, r := range []reply{unknown, wrong} {
		require.Equal(t, http.StatusUnauthorized, r.status)
		require.NotNil(t, r.body.Error)
		assert.Equal(t, portal.ErrInvalidCredentials.Key, r.body.Error.Code)
		assert.Equal(t, portal.InvalidCredentialsMessage, r.body.Error.Message)
	}
}

func TestLogin_EmptyForm(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	r := h.login("", "")
	require.Equal(t, http.StatusBadRequest, r.status)
	assert.Contains(t, r.body.Error.Details, "userName")
	assert.Contains(t, r.body.Error.Details, "password")
}

func TestLogin_RotatesSession(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.createUser("grace", false)

	preLogin := h.formToken(portal.PathLogin)
	srvURL, err := url.Parse(h.srv.URL)
	require.NoError(t, err)
	preCookies := h.client.Jar.Cookies(srvURL)
	require.Len(t, preCookies, 1)

	r := h.login("grace", validPassword)
	require.Equal(t, http.StatusSeeOther, r.status)

	// A client replaying the pre-login cookie stays anonymous.
	attacker := newClient(t)
	attacker.Jar.SetCookies(srvURL, preCookies)
	r = h.do(attacker, http.MethodGet, portal.PathDashboard, nil, "")
	assert.Equal(t, http.StatusFound, r.status)
	assert.Equal(t, portal.PathLogin, r.location)

	// The pre-login CSRF token no longer passes for the signed-in client.
	r = h.post("/logout", nil, preLogin)
	assert.Equal(t, http.StatusForbidden, r.status)
}

func TestLogin_AuthRateLimit(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	for i := 1; i <= 5; i++ {
		r := h.login("nobody", "Wrong1234")
		require.Equal(t, http.StatusUnauthorized, r.status, "attempt %d", i)
	}

	r := h.login("nobody", "Wrong1234")
	require.Equal(t, http.StatusTooManyRequests, r.status)
	assert.Equal(t, "3600", r.header.Get("Retry-After"))

	// The limit covers login submissions only.
	assert.Equal(t, http.StatusOK, h.get(portal.PathLogin).status)
}

func TestCSRF_RejectsMissingOrWrongToken(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.createUser("grace", false)
	h.formToken(portal.PathLogin)

	form := url.Values{"userName": {"grace"}, "password": {validPassword}}

	r := h.post(portal.PathLogin, form, "")
	assert.Equal(t, http.StatusForbidden, r.status)

	r = h.post(portal.PathLogin, form, "not-the-token")
	assert.Equal(t, http.StatusForbidden, r.status)

	form.Set("_csrf", h.formToken(portal.PathLogin))
	r = h.post(portal.PathLogin, form, "")
	assert.Equal(t, http.StatusSeeOther, r.status, "token in form field is accepted")
}

func TestLogout(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.signup("ada_l")

	token := h.get(portal.PathDashboard).csrfToken(t)
	r := h.post("/logout", nil, token)
	require.Equal(t, http.StatusSeeOther, r.status)
	assert.Equal(t, portal.PathLogin, r.location)

	r = h.get(portal.PathDashboard)
	assert.Equal(t, http.StatusFound, r.status)
	assert.Equal(t, portal.PathLogin, r.location)
}

func TestIdleExpiry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		idle    time.Duration
		expired bool
	}{
		{name: "29 minutes", idle: 29 * time.Minute},
		{name: "exactly 30 minutes", idle: 30 * time.Minute},
		{name: "31 minutes", idle: 31 * time.Minute, expired: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := newHarness(t)
			h.signup("ada_l")
			h.clock.Advance(tt.idle)

			r := h.get(portal.PathDashboard)
			if !tt.expired {
				assert.Equal(t, http.StatusOK, r.status)
				return
			}
			assert.Equal(t, http.StatusFound, r.status)
			assert.Equal(t, portal.PathLogin, r.location)

			// Next request starts over as anonymous.
			r = h.get(portal.PathDashboard)
			assert.Equal(t, http.StatusFound, r.status)
			assert.Equal(t, portal.PathLogin, r.location)
		})
	}
}

func TestIdleExpiry_SlidingWindow(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.signup("ada_l")

	for range 3 {
		h.clock.Advance(20 * time.Minute)
		require.Equal(t, http.StatusOK, h.get(portal.PathDashboard).status)
	}
}

func TestRequireAuthenticated(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	for _, path := range []string{portal.PathDashboard, "/allocations"} {
		r := h.get(path)
		assert.Equal(t, http.StatusFound, r.status, path)
		assert.Equal(t, portal.PathLogin, r.location, path)
	}
}

func TestAllocations(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.signup("ada_l")
	token := h.get(portal.PathDashboard).csrfToken(t)

	update := func(stocks, funds, bonds string) reply {
		return h.post("/allocations", url.Values{
			"stocks": {stocks},
			"funds":  {funds},
			"bonds":  {bonds},
		}, token)
	}

	r := update("40", "35", "25")
	require.Equal(t, http.StatusOK, r.status)
	var view allocation.View
	r.data(t, &view)
	assert.Equal(t, 40, view.Stocks)
	assert.Equal(t, "ada_l", view.UserName)

	r = update("40", "35", "20")
	require.Equal(t, http.StatusBadRequest, r.status)
	assert.Equal(t, allocation.ErrInvalidAllocation.Key, r.body.Error.Code)

	r = h.get("/allocations")
	require.Equal(t, http.StatusOK, r.status)
	var own []allocation.View
	r.data(t, &own)
	require.Len(t, own, 1)
	assert.Equal(t, 25, own[0].Bonds, "rejected update leaves the record unchanged")

	r = h.get("/allocations?threshold=39")
	require.Equal(t, http.StatusOK, r.status)
	var above []allocation.View
	r.data(t, &above)
	require.Len(t, above, 1)
	assert.Equal(t, "Lovelace", above[0].LastName)

	r = h.get("/allocations?threshold=40")
	assert.Equal(t, http.StatusNotFound, r.status)

	r = h.get("/allocations?threshold=abc")
	assert.Equal(t, http.StatusBadRequest, r.status)
}

func TestBenefits_AdminOnly(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.signup("regular")

	r := h.get(portal.PathBenefits)
	assert.Equal(t, http.StatusFound, r.status)
	assert.Equal(t, portal.PathLogin, r.location)
}

func TestBenefits_AdminUpdatesStartDate(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	target := h.createUser("employee", false)
	h.createUser("boss", true)

	r := h.login("boss", validPassword)
	require.Equal(t, portal.PathBenefits, r.location)

	r = h.get(portal.PathBenefits)
	require.Equal(t, http.StatusOK, r.status)
	var listed []user.User
	r.data(t, &listed)
	require.Len(t, listed, 2)
	token := r.csrfToken(t)

	r = h.post(portal.PathBenefits, url.Values{
		"userId":           {"1"},
		"benefitStartDate": {"2031-07-15"},
	}, token)
	require.Equal(t, http.StatusOK, r.status)
	var updated user.User
	r.data(t, &updated)
	assert.Equal(t, target.ID, updated.ID)
	assert.Equal(t, time.Date(2031, 7, 15, 0, 0, 0, 0, time.UTC), updated.BenefitStartDate.UTC())

	r = h.post(portal.PathBenefits, url.Values{
		"userId":           {"1"},
		"benefitStartDate": {"15/07/2031"},
	}, token)
	assert.Equal(t, http.StatusBadRequest, r.status)

	r = h.post(portal.PathBenefits, url.Values{
		"userId":           {"99"},
		"benefitStartDate": {"2031-07-15"},
	}, token)
	assert.Equal(t, http.StatusNotFound, r.status)
}

func TestHealth(t *testing.T) {
	t.Parallel()

	t.Run("no checks", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		r := h.get("/health")
		assert.Equal(t, http.StatusOK, r.status)
	})

	t.Run("failing dependency", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t, withHealthChecks(httpserver.Check{
			Name: "mongodb",
			Ping: func(context.Context) error { return errors.New("down") },
		}))
		r := h.get("/health")
		assert.Equal(t, http.StatusServiceUnavailable, r.status)

		srvURL, err := url.Parse(h.srv.URL)
		require.NoError(t, err)
		assert.Empty(t, h.client.Jar.Cookies(srvURL), "health checks do not open sessions")
	})
}
