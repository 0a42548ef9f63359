package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	resp "user-profile-service/internal/transport/http/response"
)

const metricsNS = "user_profile"

var (
	httpReqTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: metricsNS, Name: "http_requests_total", Help: "HTTP requests by route, method and status"},
		[]string{"route", "method", "status"},
	)
	httpLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNS,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"route", "method"},
	)
	httpInflight = prometheus.NewGauge(
		prometheus.GaugeOpts{Namespace: metricsNS, Name: "http_inflight_requests", Help: "Requests holding a concurrency slot"},
	)
	httpRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: metricsNS, Name: "http_rejected_total", Help: "Requests rejected by guard middleware"},
		[]string{"reason"},
	)
)

func init() { prometheus.MustRegister(httpReqTotal, httpLatency, httpInflight, httpRejected) }

// reject 守卫类中间件统一出口：计数 + 信封
func reject(c *gin.Context, reason string, code int, msg string) {
	httpRejected.WithLabelValues(reason).Inc()
	c.AbortWithStatusJSON(http.StatusOK, resp.Error(code, msg))
}

// Metrics 未命中路由统一记为 unmatched，避免 path 打爆标签基数
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpReqTotal.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		httpLatency.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
