package ratelimit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/benefitskit/core"
)

// DefaultRedisPrefix is prepended to limiter keys.
const DefaultRedisPrefix = "ratelimit:"

// Scores are microseconds since the Unix epoch, which a Lua number holds
// exactly. Entries whose age is window or more are removed.
var recordScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local n = tonumber(ARGV[4])
local member = ARGV[5]

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
local count = redis.call('ZCARD', key)
local allowed = 0
if count + n <= limit then
	for i = 1, n do
		redis.call('ZADD', key, now, member .. ':' .. i)
	end
	count = count + n
	allowed = 1
end
if count > 0 then
	redis.call('PEXPIRE', key, math.ceil(window / 1000))
end

local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
local oldestScore = -1
if #oldest > 0 then
	oldestScore = tonumber(oldest[2])
end
return {allowed, count, oldestScore}
`)

var countScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
local count = redis.call('ZCARD', key)
local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
local oldestScore = -1
if #oldest > 0 then
	oldestScore = tonumber(oldest[2])
end
return {count, oldestScore}
`)

// RedisStore implements Store with one sorted set per key.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStore creates a Redis-backed store. An empty prefix selects
// DefaultRedisPrefix.
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Record(ctx context.Context, key string, now time.Time, window time.Duration, limit, n int) (Window, error) {
	res, err := recordScript.Run(ctx, s.client,
		[]string{s.prefix + key},
		now.UnixMicro(), window.Microseconds(), limit, n, uuid.NewString(),
	).Int64Slice()
	if err != nil {
		return Window{}, core.Unavailable(err)
	}
	return Window{
		Allowed: res[0] == 1,
		Count:   int(res[1]),
		Oldest:  fromMicros(res[2]),
	}, nil
}

func (s *RedisStore) Count(ctx context.Context, key string, now time.Time, window time.Duration) (Window, error) {
	res, err := countScript.Run(ctx, s.client,
		[]string{s.prefix + key},
		now.UnixMicro(), window.Microseconds(),
	).Int64Slice()
	if err != nil {
		return Window{}, core.Unavailable(err)
	}
	return Window{
		Count:  int(res[0]),
		Oldest: fromMicros(res[1]),
	}, nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return core.Unavailable(err)
	}
	return nil
}

func fromMicros(us int64) time.Time {
	if us < 0 {
		return time.Time{}
	}
	return time.UnixMicro(us)
}
