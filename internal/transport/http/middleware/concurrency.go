package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"

	resp "user-profile-service/internal/transport/http/response"
)

// ConcurrencyLimit 限制同时处理的请求数（bcrypt 与 DB 是瓶颈）
// 排队等待受 request context 约束，放在 Timeout 之后时等待时间也算进超时
func ConcurrencyLimit(max int64) gin.HandlerFunc {
	if max <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	sem := semaphore.NewWeighted(max)
	return func(c *gin.Context) {
		if err := sem.Acquire(c.Request.Context(), 1); err != nil {
			reject(c, "busy", resp.CodeUnavailable, "server busy")
			return
		}
		httpInflight.Inc()
		defer func() {
			httpInflight.Dec()
			sem.Release(1)
		}()
		c.Next()
	}
}
