package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lumina_back_end/internal/database"
)

const (
	// Checkout is deliberately tight: it doubles as the guard against
	// double-submits from impatient double-clicks.
	CheckoutMaxRequests = 5
	CheckoutWindow      = 1 * time.Minute

	TrackMaxRequests = 20
	TrackWindow      = 1 * time.Minute
)

// CheckoutRateLimit caps order-creation attempts per client IP.
func CheckoutRateLimit() gin.HandlerFunc {
	return fixedWindow("checkout", CheckoutMaxRequests, CheckoutWindow)
}

// TrackRateLimit slows down order-number guessing on the tracking endpoint.
func TrackRateLimit() gin.HandlerFunc {
	return fixedWindow("track", TrackMaxRequests, TrackWindow)
}

func fixedWindow(name string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		key := fmt.Sprintf("ratelimit:%s:%s", name, c.ClientIP())

		requests, _ := database.Redis.Get(ctx, key).Int()
		if requests >= limit {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Too many requests. Please wait a moment and try again",
				"retry_after": int(window.Seconds()),
			})
			c.Abort()
			return
		}

		pipe := database.Redis.Pipeline()
		pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, window)
		pipe.Exec(ctx)

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", limit-requests-1))

		c.Next()
	}
}
