package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"user-profile-service/internal/domain"
	httpez "user-profile-service/internal/transport/http/ez"
)

type AdminHandler struct{ svc UserService }

func NewAdminHandler(svc UserService) *AdminHandler { return &AdminHandler{svc: svc} }

// MountAdmin admin 分组已走 AuthJWT("admin")
func (h *AdminHandler) MountAdmin(admin *gin.RouterGroup) {
	ez := httpez.New(admin)

	// --- GET /admin/v1/users  用户列表（分页） ---
	httpez.RegisterAction(ez, httpez.Action[domain.ListQuery, *domain.Page[domain.User]]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, in *domain.ListQuery) (*domain.Page[domain.User], error) {
			p, err := h.svc.List(c.Request.Context(), *in)
			if err != nil {
				return nil, httpez.Internal("list users failed", err)
			}
			return p, nil
		},
	})

	// --- POST /admin/v1/users/:id/ban  封禁（软删） ---
	httpez.RegisterAction(ez, httpez.Action[struct{}, gin.H]{
		Method: http.MethodPost,
		Path:   "/users/:id/ban",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id := c.Param("id")
			if id == "" {
				return nil, httpez.BadRequest("missing id")
			}
			if err := h.svc.Ban(c.Request.Context(), id); err != nil {
				return nil, mapErr(err)
			}
			return gin.H{"id": id}, nil
		},
	})
}
