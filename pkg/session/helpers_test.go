package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/benefitskit/pkg/cookie"
	"github.com/dmitrymomot/benefitskit/pkg/session"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock {
	return &clock{now: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}
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
	mgr   *session.Manager
	store *session.MemoryStore
	clock *clock
}

func newHarness(t *testing.T, opts ...session.Option) harness {
	t.Helper()

	cm, err := cookie.New([]string{testSecret})
	require.NoError(t, err)

	store := session.NewMemoryStore(0)
	clk := newClock()
	base := []session.Option{
		session.WithStore(store),
		session.WithCookieManager(cm),
		session.WithClock(clk.Now),
	}
	mgr := session.New(append(base, opts...)...)
	t.Cleanup(func() { _ = mgr.Close() })

	return harness{mgr: mgr, store: store, clock: clk}
}

// follow builds a request carrying the cookies set by a previous response.
func follow(rec *httptest.ResponseRecorder, method, target string) *http.Request {
	r := httptest.NewRequest(method, target, nil)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge >= 0 {
			r.AddCookie(c)
		}
	}
	return r
}

type adminSet map[int64]bool

func (a adminSet) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	return a[userID], nil
}
