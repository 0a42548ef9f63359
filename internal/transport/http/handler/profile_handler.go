package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"user-profile-service/internal/core/auth"
	"user-profile-service/internal/domain"
	"user-profile-service/internal/feature/user"
	httpez "user-profile-service/internal/transport/http/ez"
	mdw "user-profile-service/internal/transport/http/middleware"
)

type ProfileHandler struct {
	svc UserService
	jwt *auth.JWTer
}

func NewProfileHandler(svc UserService, jwter *auth.JWTer) *ProfileHandler {
	return &ProfileHandler{svc: svc, jwt: jwter}
}

func (h *ProfileHandler) MountAPI(api *gin.RouterGroup) {
	// 公共：邮箱验证
	httpez.RegisterAction(httpez.New(api), httpez.Action[user.VerifyRequest, gin.H]{
		Method: http.MethodPost,
		Path:   "/verify",
		Binder: httpez.BindBody,
		Rules:  user.VerifyRules,
		Handler: func(c *gin.Context, in *user.VerifyRequest) (gin.H, error) {
			u, err := h.svc.Verify(c.Request.Context(), in.ID)
			if err != nil {
				return nil, mapErr(err)
			}
			return gin.H{"email": u.Email, "verified": u.Verified}, nil
		},
	})

	// 需要登录
	g := api.Group("/profile", mdw.AuthJWT(h.jwt))
	ez := httpez.New(g)

	httpez.RegisterAction(ez, httpez.Action[struct{}, *domain.User]{
		Method: http.MethodGet,
		Path:   "",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.User, error) {
			u, err := h.svc.Profile(c.Request.Context(), c.GetString(mdw.KeyUserID))
			return u, mapErr(err)
		},
	})

	httpez.RegisterAction(ez, httpez.Action[user.UpdateProfileRequest, *domain.User]{
		Method: http.MethodPatch,
		Path:   "",
		Binder: httpez.BindBody,
		Rules:  user.UpdateProfileRules,
		Auth:   true,
		Handler: func(c *gin.Context, in *user.UpdateProfileRequest) (*domain.User, error) {
			u, err := h.svc.UpdateProfile(c.Request.Context(), c.GetString(mdw.KeyUserID), c.GetString(mdw.KeyRole), *in)
			return u, mapErr(err)
		},
	})

	httpez.RegisterAction(ez, httpez.Action[user.ChangePasswordRequest, gin.H]{
		Method: http.MethodPost,
		Path:   "/changePassword",
		Binder: httpez.BindBody,
		Rules:  user.ChangePasswordRules,
		Auth:   true,
		Handler: func(c *gin.Context, in *user.ChangePasswordRequest) (gin.H, error) {
			changed, err := h.svc.ChangePassword(c.Request.Context(), c.GetString(mdw.KeyUserID), *in)
			if err != nil {
				return nil, mapErr(err)
			}
			return gin.H{"changed": changed}, nil
		},
	})
}
