package sequence_test

import (
	"context"
	"os"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	drv "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/benefitskit/core"
	"github.com/dmitrymomot/benefitskit/pkg/sequence"
)

// exerciseGenerator checks the contract every backend must satisfy.
func exerciseGenerator(t *testing.T, gen sequence.Generator) {
	t.Helper()
	ctx := context.Background()

	t.Run("first value is one", func(t *testing.T) {
		n, err := gen.Next(ctx, "fresh")
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		n, err = gen.Next(ctx, "fresh")
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})

	t.Run("counters are independent", func(t *testing.T) {
		a, err := gen.Next(ctx, "a")
		require.NoError(t, err)
		b, err := gen.Next(ctx, "b")
		require.NoError(t, err)
		assert.Equal(t, int64(1), a)
		assert.Equal(t, int64(1), b)
	})

	t.Run("concurrent callers get distinct contiguous values", func(t *testing.T) {
		const callers = 50

		var (
			wg  sync.WaitGroup
			mu  sync.Mutex
			got []int64
		)
		for range callers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				n, err := gen.Next(ctx, "userId")
				assert.NoError(t, err)
				mu.Lock()
				got = append(got, n)
				mu.Unlock()
			}()
		}
		wg.Wait()

		slices.Sort(got)
		want := make([]int64, callers)
		for i := range want {
			want[i] = int64(i + 1)
		}
		assert.Equal(t, want, got)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := gen.Next(ctx, "")
		assert.ErrorIs(t, err, sequence.ErrEmptyName)
	})
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	exerciseGenerator(t, sequence.NewMemoryStore())
}

func TestMemoryStore_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := sequence.NewMemoryStore().Next(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRedisStore(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	exerciseGenerator(t, sequence.NewRedisStore(client, ""))
	v, err := mr.Get(sequence.DefaultRedisPrefix + "userId")
	require.NoError(t, err)
	assert.Equal(t, "50", v)
}

func TestRedisStore_Unavailable(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	n, err := sequence.NewRedisStore(client, "test:").Next(context.Background(), "userId")
	assert.ErrorIs(t, err, core.ErrStoreUnavailable)
	assert.Zero(t, n, "no identifier is fabricated on failure")
}

func TestMongoStore(t *testing.T) {
	url := os.Getenv("MONGODB_TEST_URL")
	if url == "" {
		t.Skip("MONGODB_TEST_URL not set")
	}

	client, err := drv.Connect(options.Client().ApplyURI(url))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	db := client.Database("sequence_test_" + time.Now().Format("150405.000000"))
	t.Cleanup(func() { _ = db.Drop(context.Background()) })

	exerciseGenerator(t, sequence.NewMongoStore(db))
}

func TestMongoStore_Unavailable(t *testing.T) {
	t.Parallel()

	client, err := drv.Connect(options.Client().
		ApplyURI("mongodb://127.0.0.1:1").
		SetServerSelectionTimeout(100 * time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	_, err = sequence.NewMongoStore(client.Database("x"), sequence.WithCollection("ids")).Next(context.Background(), "userId")
	assert.ErrorIs(t, err, core.ErrStoreUnavailable)
}

func TestGeneratorFunc(t *testing.T) {
	t.Parallel()

	gen := sequence.GeneratorFunc(func(ctx context.Context, name string) (int64, error) {
		return 42, nil
	})
	n, err := gen.Next(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)
}
