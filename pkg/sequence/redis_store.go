package sequence

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/benefitskit/core"
)

// DefaultRedisPrefix is prepended to counter names to form Redis keys.
const DefaultRedisPrefix = "counter:"

// RedisStore implements Generator with Redis INCR.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStore creates a Redis-backed counter store. An empty prefix
// selects DefaultRedisPrefix.
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Next(ctx context.Context, name string) (int64, error) {
	if name == "" {
		return 0, ErrEmptyName
	}
	n, err := s.client.Incr(ctx, s.prefix+name).Result()
	if err != nil {
		return 0, core.Unavailable(err)
	}
	return n, nil
}
