package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// InMemoryRateLimiter caps requests per key over a sliding window. Keys are
// client IPs at the router level, but any string works.
type InMemoryRateLimiter struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	limit  int
	window time.Duration
}

func NewInMemoryRateLimiter(limit int, window time.Duration) *InMemoryRateLimiter {
	l := &InMemoryRateLimiter{
		hits:   make(map[string][]time.Time),
		limit:  limit,
		window: window,
	}
	go l.janitor()
	return l
}

func (l *InMemoryRateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := time.Now()
	recent := l.prune(key, now)
	if len(recent) >= l.limit {
		return false
	}
	l.hits[key] = append(recent, now)
	return true
}

// prune drops hits older than the window; caller holds the lock.
func (l *InMemoryRateLimiter) prune(key string, now time.Time) []time.Time {
	cutoff := now.Add(-l.window)
	recent := l.hits[key][:0]
	for _, t := range l.hits[key] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}
	return recent
}

// janitor evicts idle keys so the map does not grow unbounded.
func (l *InMemoryRateLimiter) janitor() {
	for range time.Tick(time.Minute) {
		l.mu.Lock()
		now := time.Now()
		for key := range l.hits {
			if recent := l.prune(key, now); len(recent) == 0 {
				delete(l.hits, key)
			} else {
				l.hits[key] = recent
			}
		}
		l.mu.Unlock()
	}
}

// RateLimit limits by client IP.
func RateLimit(limiter *InMemoryRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
