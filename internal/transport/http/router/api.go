package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"user-profile-service/internal/core/server"
	mdw "user-profile-service/internal/transport/http/middleware"
)

// Options 入口守卫参数，零值取默认
type Options struct {
	RPS           float64
	Burst         int
	MaxConcurrent int64
	MaxBodyBytes  int64
	Timeout       time.Duration
	CORSOrigins   []string
}

func (o Options) withDefaults() Options {
	if o.RPS <= 0 {
		o.RPS = 200
	}
	if o.Burst <= 0 {
		o.Burst = int(2 * o.RPS)
	}
	if o.MaxConcurrent <= 0 {
		o.MaxConcurrent = 300
	}
	if o.MaxBodyBytes <= 0 {
		o.MaxBodyBytes = 1 << 20
	}
	if o.Timeout <= 0 {
		o.Timeout = 10 * time.Second
	}
	return o
}

// use 顺序有讲究：Timeout 在 ConcurrencyLimit 之前，排队时间计入超时
func use(r *gin.Engine, l *zap.Logger, o Options) {
	o = o.withDefaults()
	r.Use(
		mdw.RequestID(),
		mdw.AccessLog(l),
		mdw.Metrics(),
		mdw.RateLimit(rate.Limit(o.RPS), o.Burst),
		mdw.MaxBodyBytes(o.MaxBodyBytes),
		mdw.Timeout(o.Timeout),
		mdw.ConcurrencyLimit(o.MaxConcurrent),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// NewAPIEngine 用户端：/api/v1 下挂载 reg 中的 APIModule
func NewAPIEngine(l *zap.Logger, reg *Registry, o Options) *gin.Engine {
	r := server.NewRouter(l, o.CORSOrigins...)
	use(r, l, o)
	reg.MountAllAPI(r.Group("/api/v1"))
	return r
}
