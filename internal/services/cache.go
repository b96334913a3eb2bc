package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/AnshRaj112/serenify-journal/internal/metrics"
	"github.com/AnshRaj112/serenify-journal/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// CacheKeyPrefix is the Redis key prefix for cached data
const CacheKeyPrefix = "cache:"

// CacheKey generates a cache key for a specific resource
func CacheKey(resource string, identifier string) string {
	return fmt.Sprintf("%s%s:%s", CacheKeyPrefix, resource, identifier)
}

// TrendCache keeps each user's computed mood trend in Redis for a short TTL.
// A zero TTL disables it. Errors are logged and treated as misses.
type TrendCache struct {
	rdb redis.Cmdable
	ttl time.Duration
	log zerolog.Logger
}

func NewTrendCache(rdb redis.Cmdable, ttl time.Duration, log zerolog.Logger) *TrendCache {
	return &TrendCache{rdb: rdb, ttl: ttl, log: log.With().Str("component", "trend_cache").Logger()}
}

func (c *TrendCache) enabled() bool {
	return c != nil && c.rdb != nil && c.ttl > 0
}

func (c *TrendCache) Get(ctx context.Context, userID string) ([]models.MoodPoint, bool) {
	if !c.enabled() {
		return nil, false
	}

	val, err := c.rdb.Get(ctx, CacheKey("mood_trend", userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.TrendCacheResults.WithLabelValues("miss").Inc()
		return nil, false
	}
	if err != nil {
		metrics.TrendCacheResults.WithLabelValues("error").Inc()
		c.log.Warn().Err(err).Str("user_id", userID).Msg("trend cache read failed")
		return nil, false
	}

	var trend []models.MoodPoint
	if err := json.Unmarshal(val, &trend); err != nil {
		metrics.TrendCacheResults.WithLabelValues("error").Inc()
		c.log.Warn().Err(err).Str("user_id", userID).Msg("trend cache value unreadable")
		return nil, false
	}
	metrics.TrendCacheResults.WithLabelValues("hit").Inc()
	return trend, true
}

func (c *TrendCache) Set(ctx context.Context, userID string, trend []models.MoodPoint) {
	if !c.enabled() {
		return
	}
	data, err := json.Marshal(trend)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, CacheKey("mood_trend", userID), data, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("user_id", userID).Msg("trend cache write failed")
	}
}

// Invalidate drops the user's cached trend after a write.
func (c *TrendCache) Invalidate(ctx context.Context, userID string) {
	if !c.enabled() {
		return
	}
	if err := c.rdb.Del(ctx, CacheKey("mood_trend", userID)).Err(); err != nil {
		c.log.Warn().Err(err).Str("user_id", userID).Msg("trend cache invalidation failed")
	}
}
