package throttle

import (
	"context"
	"time"

	"smarthr/internal/domain/service"
	"smarthr/internal/errors"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "smarthr:throttle:"

// RedisThrottle is a fixed-window counter shared by every replica.
type RedisThrottle struct {
	client redis.UniversalClient
	limit  int64
	window time.Duration
}

// NewRedisThrottle allows limit attempts per key in each window.
func NewRedisThrottle(client redis.UniversalClient, limit int, window time.Duration) *RedisThrottle {
	return &RedisThrottle{client: client, limit: int64(limit), window: window}
}

var _ service.Throttle = (*RedisThrottle)(nil)

func (t *RedisThrottle) Allow(ctx context.Context, key string) (bool, error) {
	fullKey := redisKeyPrefix + key

	count, err := t.client.Incr(ctx, fullKey).Result()
	if err != nil {
		return false, errors.Wrap(err, "redis incr")
	}
	if count == 1 {
		if err := t.client.Expire(ctx, fullKey, t.window).Err(); err != nil {
			return false, errors.Wrap(err, "redis expire")
		}
	}

	return count <= t.limit, nil
}
