package portal_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/benefitskit/modules/portal"
	"github.com/dmitrymomot/benefitskit/pkg/allocation"
	"github.com/dmitrymomot/benefitskit/pkg/cookie"
	"github.com/dmitrymomot/benefitskit/pkg/httpserver"
	"github.com/dmitrymomot/benefitskit/pkg/ratelimit"
	"github.com/dmitrymomot/benefitskit/pkg/sequence"
	"github.com/dmitrymomot/benefitskit/pkg/session"
	"github.com/dmitrymomot/benefitskit/pkg/user"
)

const testSecret = "0123456789abcdef0123456789abcdef"

const validPassword = "Secret123"

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type harness struct {
	t      *testing.T
	srv    *httptest.Server
	client *http.Client
	clock  *clock
	users  user.Service
}

type harnessOption func(*portal.Options)

func withHealthChecks(checks ...httpserver.Check) harnessOption {
	return func(o *portal.Options) { o.HealthChecks = checks }
}

func newHarness(t *testing.T, opts ...harnessOption) *harness {
	t.Helper()

	clk := &clock{now: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}

	users := user.NewService(user.NewMemoryStore(), sequence.NewMemoryStore(),
		user.WithBcryptCost(bcrypt.MinCost),
	)
	allocations := allocation.NewService(allocation.NewMemoryStore(), users)

	cm, err := cookie.New([]string{testSecret})
	require.NoError(t, err)

	sessions := session.New(
		session.WithCookieManager(cm),
		session.WithConfig(session.Config{SecureCookies: false}),
		session.WithAdminChecker(users),
		session.WithClock(clk.Now),
		session.WithErrorHandler(portal.RenderError),
	)
	t.Cleanup(func() { _ = sessions.Close() })

	limitStore := ratelimit.NewMemoryStore()
	t.Cleanup(func() { _ = limitStore.Close() })
	limiters, err := ratelimit.NewFromConfig(ratelimit.DefaultConfig(), limitStore)
	require.NoError(t, err)

	options := portal.Options{
		Users:       users,
		Allocations: allocations,
		Sessions:    sessions,
		Limiters:    limiters,
	}
	for _, opt := range opts {
		opt(&options)
	}

	srv := httptest.NewServer(portal.New(options).Handle())
	t.Cleanup(srv.Close)

	return &harness{
		t:      t,
		srv:    srv,
		client: newClient(t),
		clock:  clk,
		users:  users,
	}
}

// newClient returns a client with its own cookie jar that never follows redirects.
func newClient(t *testing.T) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Meta  map[string]any  `json:"meta"`
	Error *struct {
		Code    string              `json:"code"`
		Message string              `json:"message"`
		Details map[string][]string `json:"details"`
	} `json:"error"`
}

type reply struct {
	status   int
	location string
	header   http.Header
	body     envelope
}

func (r reply) data(t *testing.T, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.body.Data, v))
}

func (r reply) csrfToken(t *testing.T) string {
	t.Helper()
	token, ok := r.body.Meta["csrfToken"].(string)
	require.True(t, ok, "response carries no csrf token")
	return token
}

func (h *harness) do(client *http.Client, method, path string, form url.Values, csrfToken string) reply {
	h.t.Helper()

	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}

	req, err := http.NewRequestWithContext(context.Background(), method, h.srv.URL+path, body)
	require.NoError(h.t, err)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if csrfToken != "" {
		req.Header.Set("X-CSRF-Token", csrfToken)
	}

	resp, err := client.Do(req)
	require.NoError(h.t, err)
	defer resp.Body.Close()

	out := reply{
		status:   resp.StatusCode,
		location: resp.Header.Get("Location"),
		header:   resp.Header,
	}
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(h.t, json.NewDecoder(resp.Body).Decode(&out.body))
	}
	return out
}

func (h *harness) get(path string) reply {
	h.t.Helper()
	return h.do(h.client, http.MethodGet, path, nil, "")
}

func (h *harness) post(path string, form url.Values, csrfToken string) reply {
	h.t.Helper()
	return h.do(h.client, http.MethodPost, path, form, csrfToken)
}

// formToken loads a form page and returns its CSRF token.
func (h *harness) formToken(path string) string {
	h.t.Helper()

	r := h.get(path)
	require.Equal(h.t, http.StatusOK, r.status)

	var page struct {
		CSRFToken string `json:"csrfToken"`
	}
	r.data(h.t, &page)
	require.NotEmpty(h.t, page.CSRFToken)
	return page.CSRFToken
}

func signupForm(userName string) url.Values {
	return url.Values{
		"userName":  {userName},
		"firstName": {"Ada"},
		"lastName":  {"Lovelace"},
		"password":  {validPassword},
		"verify":    {validPassword},
	}
}

// signup creates an account through the HTTP surface and leaves the client signed in.
func (h *harness) signup(userName string) {
	h.t.Helper()

	r := h.post("/signup", signupForm(userName), h.formToken("/signup"))
	require.Equal(h.t, http.StatusSeeOther, r.status)
	require.Equal(h.t, portal.PathDashboard, r.location)
}

func (h *harness) login(userName, password string) reply {
	h.t.Helper()
	return h.post(portal.PathLogin, url.Values{
		"userName": {userName},
		"password": {password},
	}, h.formToken(portal.PathLogin))
}

// createUser inserts an account directly through the service.
func (h *harness) createUser(userName string, admin bool) *user.User {
	h.t.Helper()

	ctx := context.Background()
	u, err := h.users.CreateUser(ctx, user.NewUser{
		UserName:  userName,
		FirstName: "Grace",
		LastName:  "Hopper",
		Password:  validPassword,
	})
	require.NoError(h.t, err)
	if admin {
		require.NoError(h.t, h.users.SetAdmin(ctx, u.ID, true))
	}
	return u
}
