package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/billmind/go-bill-reminder/internal/metrics"
)

// UserRateLimiter manages token-bucket limiters per authenticated user
type UserRateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	rate     rate.Limit
	burst    int
}

// NewUserRateLimiter creates a new per-user rate limiter
func NewUserRateLimiter(rps float64, burst int) *UserRateLimiter {
	return &UserRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(rps),
		burst:    burst,
	}
}

// GetLimiter returns the rate limiter for a specific user
func (rl *UserRateLimiter) GetLimiter(userID string) *rate.Limiter {
	rl.mu.RLock()
	limiter, exists := rl.limiters[userID]
	rl.mu.RUnlock()

	if !exists {
		rl.mu.Lock()
		// Double-check after acquiring write lock
		limiter, exists = rl.limiters[userID]
		if !exists {
			limiter = rate.NewLimiter(rl.rate, rl.burst)
			rl.limiters[userID] = limiter
		}
		rl.mu.Unlock()
	}

	return limiter
}

// RateLimitMiddleware throttles requests per authenticated user. It must be
// installed after AuthMiddleware; unauthenticated requests pass through
// untouched.
func RateLimitMiddleware(rl *UserRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(userIDKey)
		if userID == "" {
			c.Next()
			return
		}

		if !rl.GetLimiter(userID).Allow() {
			metrics.RateLimitExceeded.WithLabelValues(userID).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message": "rate limit exceeded, please try again later",
			})
			return
		}

		c.Next()
	}
}
