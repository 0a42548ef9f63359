package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"user-profile-service/internal/core/auth"
	"user-profile-service/internal/domain"
	"user-profile-service/internal/feature/user"
	httpez "user-profile-service/internal/transport/http/ez"
	mdw "user-profile-service/internal/transport/http/middleware"
)

type AuthHandler struct {
	svc   UserService
	jwt   *auth.JWTer
	rps   rate.Limit
	burst int
}

func NewAuthHandler(svc UserService, jwter *auth.JWTer) *AuthHandler {
	return &AuthHandler{svc: svc, jwt: jwter, rps: 5, burst: 10}
}

// WithIPLimit 覆盖 /auth 分组的每 IP 限速，非正值保持默认
func (h *AuthHandler) WithIPLimit(rps float64, burst int) *AuthHandler {
	if rps > 0 {
		h.rps = rate.Limit(rps)
	}
	if burst > 0 {
		h.burst = burst
	}
	return h
}

func (h *AuthHandler) Priority() int { return 10 }

type tokenOut struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

func (h *AuthHandler) issue(u *domain.User) (tokenOut, error) {
	tok, err := h.jwt.Issue(u.ID, u.Role)
	if err != nil || tok == "" {
		return tokenOut{}, httpez.Internal("issue token failed", err)
	}
	return tokenOut{Token: tok, User: u}, nil
}

func (h *AuthHandler) MountAPI(api *gin.RouterGroup) {
	// 登录/注册按 IP 限速
	g := api.Group("/auth", mdw.RateLimitPerIP(h.rps, h.burst))
	ez := httpez.New(g)

	httpez.RegisterAction(ez, httpez.Action[user.RegisterRequest, tokenOut]{
		Method: http.MethodPost,
		Path:   "/register",
		Binder: httpez.BindBody,
		Rules:  user.RegisterRules,
		Handler: func(c *gin.Context, in *user.RegisterRequest) (tokenOut, error) {
			u, err := h.svc.Register(c.Request.Context(), *in)
			if err != nil {
				return tokenOut{}, mapErr(err)
			}
			return h.issue(u)
		},
	})

	httpez.RegisterAction(ez, httpez.Action[user.LoginRequest, tokenOut]{
		Method: http.MethodPost,
		Path:   "/login",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *user.LoginRequest) (tokenOut, error) {
			u, err := h.svc.Login(c.Request.Context(), in.Email, in.Password)
			if err != nil {
				return tokenOut{}, mapErr(err)
			}
			return h.issue(u)
		},
	})
}
