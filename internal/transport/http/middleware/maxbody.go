package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	resp "user-profile-service/internal/transport/http/response"
)

// MaxBodyBytes Content-Length 超限直接拒绝；分块上传由 MaxBytesReader 在读取时截断
func MaxBodyBytes(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if n <= 0 {
			c.Next()
			return
		}
		if c.Request.ContentLength > n {
			reject(c, "body_too_large", resp.CodeTooLarge, "request body too large")
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
	}
}
