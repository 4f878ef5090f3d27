package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yungbote/carprice-backend/internal/platform/logger"
)

// Limiter is a fixed-window counter. Allow reports whether one more event
// under key fits inside limit per window.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

type redisLimiter struct {
	rdb *redis.Client
	log *logger.Logger
}

func NewRedisLimiter(rdb *redis.Client, baseLog *logger.Logger) Limiter {
	return &redisLimiter{
		rdb: rdb,
		log: baseLog.With("client", "RedisLimiter"),
	}
}

func (r *redisLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if limit <= 0 {
		return true, nil
	}

	redisKey := fmt.Sprintf("ratelimit:%s", key)

	pipe := r.rdb.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit pipeline: %w", err)
	}

	count := incr.Val()
	if count > int64(limit) {
		r.log.Debug("Rate limit exceeded", "key", key, "count", count, "limit", limit)
		return false, nil
	}
	return true, nil
}
