package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	// RateLimitWindow is 120 seconds
	RateLimitWindow = 120 * time.Second
	// RateLimitMaxRequests is the number of requests allowed per window
	RateLimitMaxRequests = 25
	// RateLimitKeyPrefix is the Redis key prefix for rate limiting
	RateLimitKeyPrefix = "ratelimit:"
	// BlockedIPKeyPrefix is the Redis key prefix for blocked IPs
	BlockedIPKeyPrefix = "blocked_ip:"
	// BlockedIPDuration is how long an IP stays blocked
	BlockedIPDuration = 24 * time.Hour
)

// RedisRateLimiter is a fixed-window counter per IP that blocks an IP once
// it exceeds the window budget. Redis failures let the request through.
type RedisRateLimiter struct {
	rdb         redis.Cmdable
	window      time.Duration
	maxRequests int64
	blockFor    time.Duration
	clientIP    func(*http.Request) string
	log         zerolog.Logger
}

func NewRedisRateLimiter(rdb redis.Cmdable, clientIP func(*http.Request) string, log zerolog.Logger) *RedisRateLimiter {
	return &RedisRateLimiter{
		rdb:         rdb,
		window:      RateLimitWindow,
		maxRequests: RateLimitMaxRequests,
		blockFor:    BlockedIPDuration,
		clientIP:    clientIP,
		log:         log.With().Str("component", "rate_limiter").Logger(),
	}
}

// IsBlocked checks if an IP is currently blocked.
func (l *RedisRateLimiter) IsBlocked(ctx context.Context, ip string) (bool, error) {
	n, err := l.rdb.Exists(ctx, BlockedIPKeyPrefix+ip).Result()
	return n > 0, err
}

// hit counts one request and returns the window total. The window starts
// with the first request.
func (l *RedisRateLimiter) hit(ctx context.Context, ip string) (int64, error) {
	key := RateLimitKeyPrefix + ip
	count, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := l.rdb.Expire(ctx, key, l.window).Err(); err != nil {
			return count, err
		}
	}
	return count, nil
}

func (l *RedisRateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := l.clientIP(r)
		ctx := r.Context()

		blocked, err := l.IsBlocked(ctx, ip)
		if err != nil {
			l.log.Warn().Err(err).Msg("rate limit check failed, allowing request")
			next.ServeHTTP(w, r)
			return
		}
		if blocked {
			writeMessage(w, http.StatusTooManyRequests, "Your IP has been temporarily blocked due to excessive requests. Please try again later.")
			return
		}

		count, err := l.hit(ctx, ip)
		if err != nil {
			l.log.Warn().Err(err).Msg("rate limit increment failed, allowing request")
			next.ServeHTTP(w, r)
			return
		}

		if count > l.maxRequests {
			if err := l.rdb.Set(ctx, BlockedIPKeyPrefix+ip, "1", l.blockFor).Err(); err != nil {
				l.log.Warn().Err(err).Str("ip", ip).Msg("failed to block ip")
			} else {
				l.log.Warn().Str("ip", ip).Int64("count", count).Msg("ip blocked for exceeding rate limit")
			}
			w.Header().Set("Retry-After", strconv.Itoa(int(l.window.Seconds())))
			writeMessage(w, http.StatusTooManyRequests, "Rate limit exceeded. Your IP has been temporarily blocked. Please try again later.")
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(l.maxRequests, 10))
		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(l.maxRequests-count, 10))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(l.window).Unix(), 10))
		next.ServeHTTP(w, r)
	})
}
