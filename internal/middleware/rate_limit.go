package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// BurstLimitConfig defines configuration for the short-window request
// limiter in front of the AI endpoints. This is separate from the daily
// usage quota: the quota meters paid LLM calls per day, this limiter stops
// rapid-fire requests from hammering the provider within a minute.
type BurstLimitConfig struct {
	// Window is the time window for rate limiting
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window
	Limit int
	// Key prefix for Redis keys
	KeyPrefix string
}

// BurstLimiter handles short-window rate limiting using Redis
type BurstLimiter struct {
	redis  *redis.Client
	config BurstLimitConfig
}

// NewBurstLimiter creates a new burst limiter instance
func NewBurstLimiter(redisClient *redis.Client, config BurstLimitConfig) *BurstLimiter {
	return &BurstLimiter{
		redis:  redisClient,
		config: config,
	}
}

// NewAIBurstLimiter limits AI endpoints to 10 requests per minute per user.
func NewAIBurstLimiter(redisClient *redis.Client) *BurstLimiter {
	return NewBurstLimiter(redisClient, BurstLimitConfig{
		Window:    time.Minute,
		Limit:     10,
		KeyPrefix: "burst:ai",
	})
}

// Middleware returns a Gin middleware that enforces the burst limit for the
// authenticated user.
func (bl *BurstLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			c.Abort()
			return
		}

		allowed, remaining, resetTime, err := bl.isAllowed(c.Request.Context(), fmt.Sprintf("%v", userID))
		if err != nil {
			// Redis being down must not block the request; the daily quota
			// in the database still gates the LLM call.
			c.Header("X-RateLimit-Error", "rate limit check failed")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(bl.config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "too many requests",
				"retry_after": int(time.Until(resetTime).Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// isAllowed increments the window counter and checks it against the limit.
func (bl *BurstLimiter) isAllowed(ctx context.Context, userID string) (bool, int, time.Time, error) {
	now := time.Now()
	windowStart := now.Truncate(bl.config.Window)
	key := fmt.Sprintf("%s:%s:%d", bl.config.KeyPrefix, userID, windowStart.Unix())

	// Pipeline keeps INCR and EXPIRE in one round trip.
	pipe := bl.redis.Pipeline()
	incrCmd := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, bl.config.Window)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, time.Time{}, err
	}

	count := int(incrCmd.Val())
	remaining := bl.config.Limit - count
	if remaining < 0 {
		remaining = 0
	}

	return count <= bl.config.Limit, remaining, windowStart.Add(bl.config.Window), nil
}
