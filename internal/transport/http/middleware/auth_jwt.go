package middleware

import (
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"user-profile-service/internal/core/auth"
	resp "user-profile-service/internal/transport/http/response"
)

// 上下文键：下游 Action 通过 c.GetString 读取
const (
	KeyClaims = "claims"
	KeyUserID = "userId"
	KeyRole   = "role"
)

func bearer(c *gin.Context) (string, bool) {
	scheme, tok, ok := strings.Cut(c.GetHeader("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	tok = strings.TrimSpace(tok)
	return tok, tok != ""
}

// AuthJWT 不传 roles 时只校验登录
func AuthJWT(j *auth.JWTer, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, ok := bearer(c)
		if !ok {
			reject(c, "auth_missing", resp.CodeUnauthorized, "missing token")
			return
		}
		claims, err := j.Parse(tok)
		if err != nil {
			reject(c, "auth_invalid", resp.CodeUnauthorized, "invalid token")
			return
		}
		if len(roles) > 0 && !slices.Contains(roles, claims.Role) {
			reject(c, "auth_role", resp.CodeForbidden, "")
			return
		}
		c.Set(KeyClaims, claims)
		c.Set(KeyUserID, claims.UserID())
		c.Set(KeyRole, claims.Role)
		c.Next()
	}
}
