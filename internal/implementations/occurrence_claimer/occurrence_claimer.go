package occurrenceclaimer

import (
	"context"
	"strconv"
	"time"

	e "medmate/internal/core/domain/errors"
	ratelimiter "medmate/internal/core/domain/rate_limiter"
	"medmate/internal/core/domain/reminder"

	"github.com/go-redis/redis/v9"
)

const KEY_PREFIX = "occurrence-claim"

// Redis claims an occurrence with SET NX. A claim outlives the dispatch
// lookback window so overlapping runs see it.
type Redis struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewRedis(redisClient *redis.Client, ttl time.Duration) *Redis {
	if redisClient == nil {
		panic(e.NewNilArgumentError("redisClient"))
	}
	if ttl <= 0 {
		panic("claim TTL must be positive")
	}
	return &Redis{redisClient: redisClient, ttl: ttl}
}

func (r *Redis) Claim(ctx context.Context, occurrence reminder.Occurrence) (bool, error) {
	return r.redisClient.SetNX(ctx, claimKey(occurrence), 1, r.ttl).Result()
}

func claimKey(occurrence reminder.Occurrence) string {
	return ratelimiter.Key(
		KEY_PREFIX,
		strconv.FormatInt(int64(occurrence.ReminderID), 10),
		strconv.FormatInt(occurrence.At.Unix(), 10),
	)
}
