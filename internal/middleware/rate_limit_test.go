package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func burstTestRouter(limiter *BurstLimiter, withUser bool) *gin.Engine {
	router := gin.New()
	handlers := []gin.HandlerFunc{}
	if withUser {
		handlers = append(handlers, func(c *gin.Context) {
			c.Set("user_id", uuid.New())
			c.Next()
		})
	}
	handlers = append(handlers, limiter.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.POST("/ai", handlers...)
	return router
}

// Redis being unreachable must not block the request; the daily quota in
// the database still gates the underlying LLM call.
func TestBurstLimiterFailsOpenWithoutRedis(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
	})
	limiter := NewAIBurstLimiter(client)
	router := burstTestRouter(limiter, true)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/ai", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "rate limit check failed", recorder.Header().Get("X-RateLimit-Error"))
}

func TestBurstLimiterRequiresAuthenticatedUser(t *testing.T) {
	limiter := NewAIBurstLimiter(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}))
	router := burstTestRouter(limiter, false)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/ai", nil))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
