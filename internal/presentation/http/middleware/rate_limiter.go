package middleware

import (
	"net/http"
	"strconv"

	"github.com/dukapoint/pos-engine/internal/config"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiterMiddleware applies a single device-wide limiter. One terminal
// has one front-end; the limiter only guards against a runaway client loop.
func RateLimiterMiddleware(cfg *config.RateLimitConfig) gin.HandlerFunc {
	requests := cfg.Requests
	if requests <= 0 {
		requests = 100
	}
	duration := cfg.Duration
	if duration <= 0 {
		duration = 60
	}
	limiter := rate.NewLimiter(rate.Limit(float64(requests)/float64(duration)), requests)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "Rate limit exceeded. Please try again later.",
			})
			return
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(requests))
		c.Next()
	}
}
