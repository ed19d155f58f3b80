package ratelimit_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/benefitskit/core"
	"github.com/dmitrymomot/benefitskit/pkg/ratelimit"
)

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

type storeFactory func(t *testing.T) ratelimit.Store

func memoryStore(t *testing.T) ratelimit.Store {
	s := ratelimit.NewMemoryStore()
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func redisStore(t *testing.T) ratelimit.Store {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return ratelimit.NewRedisStore(client, "")
}

var stores = map[string]storeFactory{
	"memory": memoryStore,
	"redis":  redisStore,
}

func TestSlidingWindow_AuthLimit(t *testing.T) {
	t.Parallel()

	for name, factory := range stores {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			clk := newClock()
			sw, err := ratelimit.NewSlidingWindow(factory(t), 5, time.Hour, ratelimit.WithClock(clk.Now), ratelimit.WithName("auth"))
			require.NoError(t, err)
			ctx := context.Background()

			for i := 1; i <= 5; i++ {
				res, err := sw.Allow(ctx, "10.0.0.1")
				require.NoError(t, err)
				assert.True(t, res.Allowed, "attempt %d", i)
				assert.Equal(t, 5-i, res.Remaining)
				assert.Zero(t, res.RetryAfter())
				clk.Advance(time.Minute)
			}

			res, err := sw.Allow(ctx, "10.0.0.1")
			require.NoError(t, err)
			assert.False(t, res.Allowed, "6th attempt is rejected")
			assert.Equal(t, 0, res.Remaining)
			// Oldest attempt was 5 minutes ago; it leaves the window in 55 minutes.
			assert.Equal(t, 55*time.Minute, res.RetryAfter())

			var exceeded *ratelimit.ExceededError
			require.ErrorAs(t, res.Err(), &exceeded)
			assert.ErrorIs(t, res.Err(), ratelimit.ErrRateLimitExceeded)
			assert.Equal(t, core.KindRateLimited, core.KindOf(res.Err()))

			other, err := sw.Allow(ctx, "10.0.0.2")
			require.NoError(t, err)
			assert.True(t, other.Allowed, "keys are independent")

			clk.Advance(55 * time.Minute)
			res, err = sw.Allow(ctx, "10.0.0.1")
			require.NoError(t, err)
			assert.True(t, res.Allowed, "oldest attempt slid out of the window")
		})
	}
}

func TestSlidingWindow_RejectedAttemptsAreNotCounted(t *testing.T) {
	t.Parallel()

	for name, factory := range stores {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			clk := newClock()
			sw, err := ratelimit.NewSlidingWindow(factory(t), 2, time.Minute, ratelimit.WithClock(clk.Now))
			require.NoError(t, err)
			ctx := context.Background()

			for range 2 {
				_, err := sw.Allow(ctx, "k")
				require.NoError(t, err)
			}
			for range 10 {
				res, err := sw.Allow(ctx, "k")
				require.NoError(t, err)
				assert.False(t, res.Allowed)
			}

			clk.Advance(time.Minute)
			res, err := sw.Allow(ctx, "k")
			require.NoError(t, err)
			assert.True(t, res.Allowed)
			assert.Equal(t, 1, res.Remaining)
		})
	}
}

func TestSlidingWindow_StatusAndReset(t *testing.T) {
	t.Parallel()

	for name, factory := range stores {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			clk := newClock()
			sw, err := ratelimit.NewSlidingWindow(factory(t), 3, time.Minute, ratelimit.WithClock(clk.Now))
			require.NoError(t, err)
			ctx := context.Background()

			st, err := sw.Status(ctx, "k")
			require.NoError(t, err)
			assert.True(t, st.Allowed)
			assert.Equal(t, 3, st.Remaining)

			for range 3 {
				_, err := sw.Allow(ctx, "k")
				require.NoError(t, err)
			}

			st, err = sw.Status(ctx, "k")
			require.NoError(t, err)
			assert.False(t, st.Allowed)
			assert.Equal(t, 0, st.Remaining)

			st, err = sw.Status(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, 0, st.Remaining, "status does not record")

			require.NoError(t, sw.Reset(ctx, "k"))
			res, err := sw.Allow(ctx, "k")
			require.NoError(t, err)
			assert.True(t, res.Allowed)
			assert.Equal(t, 2, res.Remaining)
		})
	}
}

func TestSlidingWindow_Concurrent(t *testing.T) {
	t.Parallel()

	for name, factory := range stores {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			sw, err := ratelimit.NewSlidingWindow(factory(t), 25, time.Minute)
			require.NoError(t, err)

			var (
				wg      sync.WaitGroup
				allowed atomic.Int64
			)
			for range 100 {
				wg.Add(1)
				go func() {
					defer wg.Done()
					res, err := sw.Allow(context.Background(), "shared")
					if assert.NoError(t, err) && res.Allowed {
						allowed.Add(1)
					}
				}()
			}
			wg.Wait()

			assert.Equal(t, int64(25), allowed.Load(), "exactly limit requests are admitted")
		})
	}
}

func TestSlidingWindow_AllowN(t *testing.T) {
	t.Parallel()

	sw, err := ratelimit.NewSlidingWindow(memoryStore(t), 5, time.Minute)
	require.NoError(t, err)
	ctx := context.Background()

	res, err := sw.AllowN(ctx, "k", 4)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 1, res.Remaining)

	res, err = sw.AllowN(ctx, "k", 2)
	require.NoError(t, err)
	assert.False(t, res.Allowed)

	res, err = sw.AllowN(ctx, "k", 0)
	require.NoError(t, err)
	assert.True(t, res.Allowed, "n below 1 counts as one")
}

func TestNewSlidingWindow_Validation(t *testing.T) {
	t.Parallel()

	store := memoryStore(t)
	tests := []struct {
		name    string
		store   ratelimit.Store
		limit   int
		window  time.Duration
		wantErr error
	}{
		{name: "nil store", limit: 1, window: time.Second, wantErr: ratelimit.ErrStoreRequired},
		{name: "zero limit", store: store, window: time.Second, wantErr: ratelimit.ErrInvalidLimit},
		{name: "zero window", store: store, limit: 1, wantErr: ratelimit.ErrInvalidInterval},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ratelimit.NewSlidingWindow(tt.store, tt.limit, tt.window)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	sw, err := ratelimit.NewSlidingWindow(store, 1, time.Second)
	require.NoError(t, err)
	_, err = sw.Allow(context.Background(), "")
	assert.ErrorIs(t, err, ratelimit.ErrKeyRequired)
}

func TestRedisStore_Unavailable(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	sw, err := ratelimit.NewSlidingWindow(ratelimit.NewRedisStore(client, "x:"), 5, time.Minute)
	require.NoError(t, err)

	_, err = sw.Allow(context.Background(), "k")
	assert.ErrorIs(t, err, core.ErrStoreUnavailable)
}

func TestRedisStore_KeyExpires(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	sw, err := ratelimit.NewSlidingWindow(ratelimit.NewRedisStore(client, ""), 5, time.Minute, ratelimit.WithName("general"))
	require.NoError(t, err)
	_, err = sw.Allow(context.Background(), "1.2.3.4")
	require.NoError(t, err)

	key := ratelimit.DefaultRedisPrefix + "general:1.2.3.4"
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Minute, mr.TTL(key))

	mr.FastForward(time.Minute + time.Second)
	assert.False(t, mr.Exists(key))
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	limiters, err := ratelimit.NewFromConfig(ratelimit.DefaultConfig(), memoryStore(t))
	require.NoError(t, err)
	assert.Equal(t, 100, limiters.General.Limit())
	assert.Equal(t, 15*time.Minute, limiters.General.Window())
	assert.Equal(t, 5, limiters.Auth.Limit())
	assert.Equal(t, time.Hour, limiters.Auth.Window())

	// Shared store, separate namespaces.
	ctx := context.Background()
	for range 5 {
		_, err := limiters.Auth.Allow(ctx, "ip")
		require.NoError(t, err)
	}
	res, err := limiters.General.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.Equal(t, 99, res.Remaining)

	_, err = ratelimit.NewFromConfig(ratelimit.Config{GeneralLimit: 0, GeneralWindow: time.Minute}, memoryStore(t))
	assert.ErrorIs(t, err, ratelimit.ErrInvalidLimit)
}

func TestMemoryStore_ConcurrentKeys(t *testing.T) {
	t.Parallel()

	store := ratelimit.NewMemoryStore(ratelimit.WithCleanupInterval(time.Millisecond))
	t.Cleanup(func() { _ = store.Close() })

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%4)
			for range 50 {
				_, err := store.Record(context.Background(), key, time.Now(), time.Millisecond, 1000, 1)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()
}

func TestMemoryStore_OutOfOrderRecords(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := ratelimit.NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })

	base := newClock().Now()
	window := 10 * time.Second

	// A caller that read the clock earlier takes the key lock second.
	_, err := store.Record(ctx, "k", base.Add(2*time.Second), window, 10, 1)
	require.NoError(t, err)
	_, err = store.Record(ctx, "k", base.Add(time.Second), window, 10, 1)
	require.NoError(t, err)

	w, err := store.Count(ctx, "k", base.Add(2*time.Second), window)
	require.NoError(t, err)
	assert.Equal(t, 2, w.Count)
	assert.Equal(t, base.Add(time.Second), w.Oldest)

	w, err = store.Count(ctx, "k", base.Add(time.Second+window), window)
	require.NoError(t, err)
	assert.Equal(t, 1, w.Count, "the earlier entry leaves the window first")
	assert.Equal(t, base.Add(2*time.Second), w.Oldest)
}
