package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/scentlab/crm-backend/internal/interfaces/http/dto"
)

// RateLimiter is an in-memory token bucket limiter keyed by client.
// Each key gets a bucket of capacity requests refilled over window.
type RateLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	capacity float64
	refill   float64 // tokens per second
	lastGC   time.Time
}

type bucket struct {
	tokens   float64
	lastSeen time.Time
}

// NewRateLimiter creates a limiter allowing requests per window per key
func NewRateLimiter(requests int, window time.Duration) *RateLimiter {
	if requests <= 0 {
		requests = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{
		buckets:  make(map[string]*bucket),
		capacity: float64(requests),
		refill:   float64(requests) / window.Seconds(),
		lastGC:   time.Now(),
	}
}

// Allow consumes one token for the key, reporting whether the request
// may proceed and how many tokens remain
func (l *RateLimiter) Allow(key string) (bool, int) {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.gcLocked(now)

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.capacity}
		l.buckets[key] = b
	} else {
		elapsed := now.Sub(b.lastSeen).Seconds()
		b.tokens += elapsed * l.refill
		if b.tokens > l.capacity {
			b.tokens = l.capacity
		}
	}
	b.lastSeen = now

	if b.tokens < 1 {
		return false, 0
	}
	b.tokens--
	return true, int(b.tokens)
}

// gcLocked drops buckets idle long enough to have fully refilled
func (l *RateLimiter) gcLocked(now time.Time) {
	if now.Sub(l.lastGC) < time.Minute {
		return
	}
	idle := time.Duration(l.capacity/l.refill) * time.Second
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) > idle {
			delete(l.buckets, key)
		}
	}
	l.lastGC = now
}

// RateLimit limits requests per client IP, or per user when
// authenticated. Limit state is exposed via X-RateLimit headers.
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	limit := strconv.Itoa(int(limiter.capacity))

	return func(c *gin.Context) {
		key := c.ClientIP()
		if claims, ok := GetClaims(c); ok {
			key = "user:" + claims.UserID
		}

		allowed, remaining := limiter.Allow(key)
		c.Header("X-RateLimit-Limit", limit)
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.NewErrorResponse(dto.CodeRateLimited, "Too many requests"))
			return
		}
		c.Next()
	}
}
