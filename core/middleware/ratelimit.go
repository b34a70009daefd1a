package middleware

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"rehearsal-room-api/core/errors"
	"rehearsal-room-api/core/logger"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// Token bucket state lives in redis so multiple instances sharing the
// ledger also share their limits. Refill and consume happen atomically in
// one script.
var tokenBucketScript = redis.NewScript(`
	local key = KEYS[1]
	local now_ms = tonumber(ARGV[1])
	local capacity = tonumber(ARGV[2])
	local refill_tokens = tonumber(ARGV[3])
	local interval_ms = tonumber(ARGV[4])
	local ttl_seconds = tonumber(ARGV[5])

	local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
	local tokens = tonumber(state[1])
	local last_refill = tonumber(state[2])

	if tokens == nil or last_refill == nil then
		tokens = capacity
		last_refill = now_ms
	end

	local elapsed = math.max(0, now_ms - last_refill)
	local intervals = math.floor(elapsed / interval_ms)
	if intervals > 0 then
		tokens = math.min(capacity, tokens + (intervals * refill_tokens))
		last_refill = last_refill + (intervals * interval_ms)
	end

	local allowed = 0
	local retry_after_ms = 0
	if tokens > 0 then
		allowed = 1
		tokens = tokens - 1
	else
		retry_after_ms = math.max(0, interval_ms - (now_ms - last_refill))
	end

	redis.call('HMSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
	redis.call('EXPIRE', key, ttl_seconds)

	return { allowed, retry_after_ms }
`)

// RateLimit throttles a route per client IP. Without redis, or when
// disabled, it passes every request through; a redis error also lets the
// request through so the limiter can never take the booking API down.
func (m *Middleware) RateLimit() echo.MiddlewareFunc {
	if m.redis == nil || !m.cfg.RateLimit.Enabled {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}

	cfg := m.cfg.RateLimit
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := rateKey(c)
			args := []interface{}{
				time.Now().UnixMilli(),
				cfg.Capacity,
				cfg.RefillTokens,
				cfg.RefillInterval.Milliseconds(),
				int64(cfg.TTL / time.Second),
			}

			vals, err := tokenBucketScript.Run(c.Request().Context(), m.redis, []string{key}, args...).Int64Slice()
			if err != nil {
				logger.Warn("Middleware:RateLimit:RedisError", "key", key, "error", err)
				return next(c)
			}
			if len(vals) != 2 {
				return next(c)
			}

			if vals[0] != 1 {
				secs := int(math.Ceil(float64(vals[1]) / 1000.0))
				c.Response().Header().Set("Retry-After", strconv.Itoa(secs))
				return echo.NewHTTPError(http.StatusTooManyRequests, map[string]any{
					"status":      "error",
					"code":        errors.ErrTooManyRequests,
					"message":     "too many requests, slow down",
					"retry_after": secs,
				})
			}
			return next(c)
		}
	}
}

func rateKey(c echo.Context) string {
	ip := c.RealIP()
	if ip == "" {
		ip = "unknown"
	}
	return strings.Join([]string{"rl", ip, c.Request().Method, c.Path()}, ":")
}
