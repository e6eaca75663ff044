package ratelimiter

import (
	"context"
	"errors"
	"fmt"
	"time"

	e "medmate/internal/core/domain/errors"
	"medmate/internal/core/domain/logging"
	ratelimiter "medmate/internal/core/domain/rate_limiter"

	"github.com/go-redis/redis/v9"
)

const KEY_PREFIX = "rate-limit"

// Redis counts requests in fixed windows aligned to the clock.
type Redis struct {
	redisClient *redis.Client
	log         logging.Logger
	now         func() time.Time
}

func NewRedis(redisClient *redis.Client, log logging.Logger, now func() time.Time) *Redis {
	if redisClient == nil {
		panic(e.NewNilArgumentError("redisClient"))
	}
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &Redis{redisClient: redisClient, log: log, now: now}
}

func (r *Redis) CheckLimit(ctx context.Context, key string, limit ratelimiter.Limit) ratelimiter.Result {
	k, ttl := windowKey(key, limit.Interval, r.now())

	cmds, err := r.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, k)
		pipe.Expire(ctx, k, ttl)
		return nil
	})
	if errors.Is(err, context.Canceled) {
		return ratelimiter.NotAllowed()
	}
	if err != nil {
		r.log.Error(ctx, "Could not check rate limit due to Redis client error.", logging.Entry("err", err))
		return ratelimiter.Allowed()
	}
	if cmds[0].(*redis.IntCmd).Val() > int64(limit.Value) {
		r.log.Info(ctx, "Rate limit exceeded.", logging.Entry("key", key), logging.Entry("limit", limit.Value))
		return ratelimiter.NotAllowed()
	}
	return ratelimiter.Allowed()
}

func windowKey(key string, interval ratelimiter.Interval, now time.Time) (string, time.Duration) {
	switch interval {
	case ratelimiter.Hour:
		return ratelimiter.Key(KEY_PREFIX, key, fmt.Sprintf("h%d", now.Hour())), time.Hour
	case ratelimiter.Minute:
		return ratelimiter.Key(KEY_PREFIX, key, fmt.Sprintf("m%d", now.Minute())), time.Minute
	default:
		panic("invalid rate limiting interval")
	}
}
