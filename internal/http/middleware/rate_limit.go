package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// tokenBucket refills at rate tokens/second up to capacity.
type tokenBucket struct {
	mu         sync.Mutex
	rate       float64
	capacity   float64
	tokens     float64
	lastRefill time.Time
}

func newTokenBucket(rate float64, capacity int) *tokenBucket {
	return &tokenBucket{
		rate:       rate,
		capacity:   float64(capacity),
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

func (tb *tokenBucket) allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	tb.tokens += now.Sub(tb.lastRefill).Seconds() * tb.rate
	tb.lastRefill = now
	if tb.tokens > tb.capacity {
		tb.tokens = tb.capacity
	}

	if tb.tokens >= 1 {
		tb.tokens--
		return true
	}
	return false
}

// RateLimit applies a per-client-IP token bucket.
func RateLimit(rate float64, burst int) gin.HandlerFunc {
	var (
		mu      sync.Mutex
		buckets = make(map[string]*tokenBucket)
	)

	return func(c *gin.Context) {
		ip := c.ClientIP()

		mu.Lock()
		tb, ok := buckets[ip]
		if !ok {
			tb = newTokenBucket(rate, burst)
			buckets[ip] = tb
		}
		mu.Unlock()

		if !tb.allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":      "Too many requests.",
				"request_id": GetRequestID(c),
			})
			return
		}
		c.Next()
	}
}
