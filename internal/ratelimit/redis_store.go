package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisStore shares the window counters across instances. The key expiry
// is the window boundary: INCR on a fresh key starts a new window.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: "ratelimit:"}
}

func (s *RedisStore) Incr(ctx context.Context, key string, window time.Duration) (int, time.Duration, error) {
	k := s.prefix + key

	pipe := s.rdb.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pttl := pipe.PTTL(ctx, k)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, 0, fmt.Errorf("ratelimit incr: %w", err)
	}

	count := int(incr.Val())
	if count == 1 || pttl.Val() < 0 {
		if err := s.rdb.PExpire(ctx, k, window).Err(); err != nil {
			return 0, 0, fmt.Errorf("ratelimit expire: %w", err)
		}
		return count, 0, nil
	}

	return count, window - pttl.Val(), nil
}

// A refund can race window expiry; a plain DECR on a lapsed key would
// seed a negative counter with no TTL.
var decrIfExists = redis.NewScript(`if redis.call("exists", KEYS[1]) == 1 then return redis.call("decr", KEYS[1]) end
return 0`)

func (s *RedisStore) Decr(ctx context.Context, key string) error {
	return decrIfExists.Run(ctx, s.rdb, []string{s.prefix + key}).Err()
}
