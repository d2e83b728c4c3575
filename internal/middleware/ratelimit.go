package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// clientLimiter is a sliding-window request counter per client IP
type clientLimiter struct {
	mu     sync.Mutex
	seen   map[string][]time.Time
	limit  int
	window time.Duration
}

func newClientLimiter(limit int, window time.Duration) *clientLimiter {
	cl := &clientLimiter{
		seen:   make(map[string][]time.Time),
		limit:  limit,
		window: window,
	}
	go cl.reap()
	return cl
}

// reap drops idle clients so the map does not grow without bound
func (cl *clientLimiter) reap() {
	ticker := time.NewTicker(cl.window)
	defer ticker.Stop()

	for range ticker.C {
		cl.mu.Lock()
		cutoff := time.Now().Add(-cl.window)
		for ip, times := range cl.seen {
			if len(times) == 0 || times[len(times)-1].Before(cutoff) {
				delete(cl.seen, ip)
			}
		}
		cl.mu.Unlock()
	}
}

func (cl *clientLimiter) allow(ip string) bool {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-cl.window)

	times := cl.seen[ip]
	live := times[:0]
	for _, t := range times {
		if t.After(cutoff) {
			live = append(live, t)
		}
	}

	if len(live) >= cl.limit {
		cl.seen[ip] = live
		return false
	}

	cl.seen[ip] = append(live, now)
	return true
}

// RateLimit limits requests per client IP within a sliding window
func RateLimit(limit int, window time.Duration) gin.HandlerFunc {
	limiter := newClientLimiter(limit, window)

	return func(c *gin.Context) {
		if !limiter.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": "Rate limit exceeded. Please try again later.",
			})
			return
		}
		c.Next()
	}
}
