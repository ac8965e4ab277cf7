package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/srihari7072/golfzon-dashboard/internal/metrics"
)

// Sliding window limiter shared across instances. Remove-count-add runs as
// one Lua script so concurrent requests cannot race the counter.
const slidingWindowScript = `
	local key = KEYS[1]
	local window = tonumber(ARGV[1])
	local limit = tonumber(ARGV[2])
	local now = tonumber(ARGV[3])

	redis.call('ZREMRANGEBYSCORE', key, 0, now - window)

	local current = redis.call('ZCARD', key)

	if current < limit then
		redis.call('ZADD', key, now, now)
		redis.call('EXPIRE', key, window)
		return {1, limit - current - 1}
	else
		return {0, 0}
	end
`

// RedisRateLimit limits each client IP to limit requests per minute. When
// Redis is unreachable the request is allowed through; the dashboard is
// read-only, so availability wins over strictness.
func RedisRateLimit(redisClient *redis.Client, limit int) gin.HandlerFunc {
	const window = time.Minute

	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		if clientIP == "" {
			clientIP = "unknown"
		}
		key := fmt.Sprintf("rate_limit:%s", clientIP)

		ctx := context.Background()
		now := time.Now().Unix()

		result, err := redisClient.Eval(ctx, slidingWindowScript, []string{key},
			int(window.Seconds()), limit, now).Result()
		if err != nil {
			c.Next() // fail open
			return
		}

		results, ok := result.([]interface{})
		if !ok || len(results) < 2 {
			c.Next() // fail open
			return
		}
		allowed := results[0].(int64)
		remaining := results[1].(int64)

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", now+int64(window.Seconds())))

		if allowed == 0 {
			metrics.RateLimitedTotal.Inc()
			c.Header("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"retry_after": int(window.Seconds()),
			})
			return
		}

		c.Next()
	}
}
