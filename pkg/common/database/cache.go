package database

import (
	"context"
	"encoding/json"
	"time"

	"github.com/inab-certh/K3-ticket-management-system/pkg/common/logger"
	"github.com/redis/go-redis/v9"
)

// CachedJSON reads a value through Redis. On a miss (or any cache error)
// it falls back to load and then writes the result back with the given
// TTL. Cache failures are logged, never surfaced: the database remains
// the source of truth.
func CachedJSON[T any](ctx context.Context, client *redis.Client, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	if client != nil {
		raw, err := client.Get(ctx, key).Result()
		if err == nil {
			var cached T
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
			logger.Log.WithField("key", key).Warn("Discarding undecodable cache entry")
		} else if err != redis.Nil {
			logger.Log.WithError(err).WithField("key", key).Warn("Cache read failed")
		}
	}

	value, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	if client != nil {
		if data, err := json.Marshal(value); err == nil {
			if err := client.Set(ctx, key, data, ttl).Err(); err != nil {
				logger.Log.WithError(err).WithField("key", key).Warn("Cache write failed")
			}
		}
	}

	return value, nil
}

// InvalidateCache drops the given cache keys. Used after curation writes
// so dropdowns pick up changes immediately.
func InvalidateCache(ctx context.Context, client *redis.Client, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	if err := client.Del(ctx, keys...).Err(); err != nil {
		logger.Log.WithError(err).Warn("Cache invalidation failed")
	}
}
