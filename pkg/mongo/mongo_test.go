package mongo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	drv "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/benefitskit/pkg/mongo"
)

type ensurer func(context.Context) error

func (f ensurer) EnsureIndexes(ctx context.Context) error { return f(ctx) }

func TestEnsureIndexes(t *testing.T) {
	t.Parallel()

	var calls int
	ok := ensurer(func(context.Context) error { calls++; return nil })
	boom := errors.New("boom")
	failing := ensurer(func(context.Context) error { calls++; return boom })

	require.NoError(t, mongo.EnsureIndexes(context.Background(), ok, ok))
	assert.Equal(t, 2, calls)

	err := mongo.EnsureIndexes(context.Background(), failing, ok)
	assert.ErrorIs(t, err, mongo.ErrIndexCreationFailed)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 4, calls, "every store is attempted")
}

func TestNew_Unreachable(t *testing.T) {
	t.Parallel()

	cfg := mongo.Config{
		ConnectionURL:  "mongodb://127.0.0.1:1",
		ConnectTimeout: 100 * time.Millisecond,
		RetryAttempts:  2,
		RetryInterval:  10 * time.Millisecond,
	}

	_, err := mongo.New(context.Background(), cfg)
	assert.ErrorIs(t, err, mongo.ErrFailedToConnectToMongo)
}

func TestHealthcheck_Unreachable(t *testing.T) {
	t.Parallel()

	client, err := drv.Connect(options.Client().
		ApplyURI("mongodb://127.0.0.1:1").
		SetServerSelectionTimeout(100 * time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	err = mongo.Healthcheck(client)(context.Background())
	assert.ErrorIs(t, err, mongo.ErrHealthcheckFailed)
}
