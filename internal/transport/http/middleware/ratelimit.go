package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	resp "user-profile-service/internal/transport/http/response"
)

// RateLimit 全局令牌桶
func RateLimit(rps rate.Limit, burst int) gin.HandlerFunc {
	lim := rate.NewLimiter(rps, burst)
	return func(c *gin.Context) {
		if !lim.Allow() {
			reject(c, "rate_global", resp.CodeTooMany, "")
			return
		}
		c.Next()
	}
}

type ipBucket struct {
	lim  *rate.Limiter
	seen time.Time
}

// 闲置超过该时长的 IP 桶会被清理
const ipBucketIdle = 10 * time.Minute

// RateLimitPerIP 每 IP 令牌桶，用于登录/注册这类可被暴力尝试的接口
func RateLimitPerIP(rps rate.Limit, burst int) gin.HandlerFunc {
	var (
		mu      sync.Mutex
		buckets = make(map[string]*ipBucket)
		sweep   time.Time
	)
	get := func(ip string, now time.Time) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		if now.Sub(sweep) > ipBucketIdle {
			for k, b := range buckets {
				if now.Sub(b.seen) > ipBucketIdle {
					delete(buckets, k)
				}
			}
			sweep = now
		}
		b, ok := buckets[ip]
		if !ok {
			b = &ipBucket{lim: rate.NewLimiter(rps, burst)}
			buckets[ip] = b
		}
		b.seen = now
		return b.lim
	}
	return func(c *gin.Context) {
		if !get(c.ClientIP(), time.Now()).Allow() {
			reject(c, "rate_ip", resp.CodeTooMany, "")
			return
		}
		c.Next()
	}
}
