package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-profile-service/internal/core/auth"
	"user-profile-service/internal/core/server"
	"user-profile-service/internal/domain"
	mdw "user-profile-service/internal/transport/http/middleware"
)

// NewAdminEngine 后台端：/admin/v1 整组要求 admin 角色
func NewAdminEngine(l *zap.Logger, jwter *auth.JWTer, reg *Registry, o Options) *gin.Engine {
	r := server.NewRouter(l, o.CORSOrigins...)
	use(r, l, o)
	reg.MountAllAdmin(r.Group("/admin/v1", mdw.AuthJWT(jwter, domain.RoleAdmin)))
	return r
}
