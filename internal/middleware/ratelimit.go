package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

// IPRateLimiter hands out one token-bucket limiter per client IP. Limiters
// live in a bounded LRU so an IP churn attack cannot grow memory without
// limit; evicted IPs simply start with a fresh bucket.
type IPRateLimiter struct {
	limiters *lru.Cache[string, *rate.Limiter]
	limit    rate.Limit
	burst    int
}

func NewIPRateLimiter(limit rate.Limit, burst int) *IPRateLimiter {
	cache, err := lru.New[string, *rate.Limiter](10000)
	if err != nil {
		log.Fatalf("Failed to create rate limiter cache: %v", err)
	}
	return &IPRateLimiter{limiters: cache, limit: limit, burst: burst}
}

func (l *IPRateLimiter) get(ip string) *rate.Limiter {
	if limiter, ok := l.limiters.Get(ip); ok {
		return limiter
	}
	limiter := rate.NewLimiter(l.limit, l.burst)
	l.limiters.Add(ip, limiter)
	return limiter
}

// RateLimit rejects requests over the per-IP budget with 429. Applied to the
// mutating engagement routes only; status and listing reads are not limited.
func RateLimit(limiter *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.get(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "Too many requests, slow down",
				"error":   "RATE_LIMITED",
			})
			return
		}
		c.Next()
	}
}
