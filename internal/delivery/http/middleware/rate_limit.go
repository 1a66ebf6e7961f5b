package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"internview-backend/internal/delivery/http/response"
	"internview-backend/internal/domain"
	"internview-backend/pkg/logger"
	"internview-backend/pkg/security"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// RateLimitConfig describes one fixed-window limiter.
type RateLimitConfig struct {
	Limit  int
	Window time.Duration
	// KeyFunc picks the bucket for a request; client IP when nil
	KeyFunc   func(*gin.Context) string
	KeyPrefix string
	// FailClosed rejects requests with 503 when redis errors instead of
	// counting them in memory
	FailClosed bool
	Skip       func(*gin.Context) bool
	Audit      *security.SecurityLogger
}

// LoginRateLimitConfig limits login attempts per IP
func LoginRateLimitConfig(perMinute int) RateLimitConfig {
	return RateLimitConfig{
		Limit:      perMinute,
		Window:     time.Minute,
		KeyPrefix:  "rl:login:",
		FailClosed: true,
	}
}

// UploadRateLimitConfig limits multipart writes per IP. JSON requests are not counted.
func UploadRateLimitConfig(perMinute int) RateLimitConfig {
	return RateLimitConfig{
		Limit:     perMinute,
		Window:    time.Minute,
		KeyPrefix: "rl:upload:",
		Skip: func(c *gin.Context) bool {
			return !strings.HasPrefix(c.ContentType(), "multipart/")
		},
	}
}

// INCR with the TTL set on the first hit of a window. Returns {count, ttl}.
var fixedWindowScript = goredis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return {count, redis.call('TTL', KEYS[1])}
`)

type windowCounter interface {
	hit(ctx context.Context, key string, window time.Duration) (count int, resetAt time.Time, err error)
}

type redisCounter struct {
	client *goredis.Client
}

func (r redisCounter) hit(ctx context.Context, key string, window time.Duration) (int, time.Time, error) {
	res, err := fixedWindowScript.Run(ctx, r.client, []string{key}, int(window.Seconds())).Int64Slice()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("rate limit script: %w", err)
	}
	if len(res) != 2 {
		return 0, time.Time{}, fmt.Errorf("rate limit script: unexpected reply %v", res)
	}
	ttl := time.Duration(res[1]) * time.Second
	if ttl < 0 {
		ttl = window
	}
	return int(res[0]), time.Now().Add(ttl), nil
}

type memoryWindow struct {
	count   int
	resetAt time.Time
}

// memoryCounter is the per-process fallback. Expired windows are swept
// lazily, at most once per sweepEvery.
type memoryCounter struct {
	mu         sync.Mutex
	windows    map[string]*memoryWindow
	lastSweep  time.Time
	sweepEvery time.Duration
	now        func() time.Time
}

func newMemoryCounter() *memoryCounter {
	return &memoryCounter{
		windows:    make(map[string]*memoryWindow),
		sweepEvery: 5 * time.Minute,
		now:        time.Now,
	}
}

func (m *memoryCounter) hit(_ context.Context, key string, window time.Duration) (int, time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if now.Sub(m.lastSweep) >= m.sweepEvery {
		for k, w := range m.windows {
			if !now.Before(w.resetAt) {
				delete(m.windows, k)
			}
		}
		m.lastSweep = now
	}

	w, ok := m.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &memoryWindow{resetAt: now.Add(window)}
		m.windows[key] = w
	}
	w.count++
	return w.count, w.resetAt, nil
}

// RateLimitMiddleware counts requests in redis when a client is given and in
// process memory otherwise.
func RateLimitMiddleware(redisClient *goredis.Client, config RateLimitConfig) gin.HandlerFunc {
	if config.KeyFunc == nil {
		config.KeyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}
	memory := newMemoryCounter()
	var primary windowCounter = memory
	if redisClient != nil {
		primary = redisCounter{client: redisClient}
	}

	return func(c *gin.Context) {
		if config.Skip != nil && config.Skip(c) {
			c.Next()
			return
		}

		key := config.KeyPrefix + config.KeyFunc(c)
		count, resetAt, err := primary.hit(c.Request.Context(), key, config.Window)
		if err != nil {
			logger.Log.Error("rate limit backend failure",
				"request_id", c.GetString(string(domain.KeyRequestID)),
				"limiter", config.KeyPrefix,
				"error", err,
			)
			if config.FailClosed {
				response.Error(c, http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.", nil)
				c.Abort()
				return
			}
			count, resetAt, _ = memory.hit(c.Request.Context(), key, config.Window)
		}

		remaining := config.Limit - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", resetAt.UTC().Format(time.RFC3339))

		if count > config.Limit {
			retryAfter := int(time.Until(resetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			logRateLimitTriggered(c, config)
			response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

func logRateLimitTriggered(c *gin.Context, config RateLimitConfig) {
	requestID := c.GetString(string(domain.KeyRequestID))
	logger.Log.Warn("rate limit triggered",
		"request_id", requestID,
		"ip", c.ClientIP(),
		"endpoint", c.FullPath(),
		"limiter", config.KeyPrefix,
	)
	config.Audit.LogRateLimitTriggered(c.Request.Context(), c.ClientIP(), requestID, c.FullPath())
}
