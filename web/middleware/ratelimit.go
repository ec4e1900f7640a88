package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"jobboard/logger"
	"jobboard/web/entity"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

var fixedWindowScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// RateLimiter is a redis-backed fixed-window counter keyed by client
// IP and path. It protects the credential endpoints from brute force.
type RateLimiter struct {
	limit  int
	window time.Duration
	client *redis.Client
	prefix string
}

// NewRateLimiter builds a limiter against the given redis address.
// Returns nil when addr is empty, which disables limiting.
func NewRateLimiter(addr, password string, limit int, window time.Duration) *RateLimiter {
	if addr == "" || limit <= 0 || window <= 0 {
		return nil
	}
	return &RateLimiter{
		limit:  limit,
		window: window,
		client: redis.NewClient(&redis.Options{Addr: addr, Password: password}),
		prefix: "jobboard:ratelimit",
	}
}

// Middleware enforces the window. Redis failures fail open: a broken
// limiter must not take login down with it.
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	if l == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		windowMs := l.window.Milliseconds()
		slot := time.Now().UTC().UnixMilli() / windowMs
		key := l.prefix + ":" + c.ClientIP() + ":" + c.FullPath() + ":" + strconv.FormatInt(slot, 10)

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		count, err := fixedWindowScript.Run(ctx, l.client, []string{key}, windowMs).Int64()
		if err != nil {
			logger.Warning("rate limit increment failed:", err)
			c.Next()
			return
		}
		if count > int64(l.limit) {
			logger.Warningf("rate limit exceeded for %s on %s (count: %d)", c.ClientIP(), c.FullPath(), count)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, entity.APIError{Error: "Too many requests. Please try again later."})
			return
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(l.limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(int64(l.limit)-count, 10))
		c.Next()
	}
}
