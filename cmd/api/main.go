package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"user-profile-service/internal/app"
	"user-profile-service/internal/core/config"
	"user-profile-service/internal/core/logger"
	"user-profile-service/internal/core/server"
	"user-profile-service/internal/transport/http/handler"
	"user-profile-service/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := app.NewLogger(cfg, "user-api")
	defer cleanup()
	defer logger.RedirectStdLog(log, zapcore.InfoLevel)()
	gin.DefaultWriter = logger.ToWriter(log, zapcore.DebugLevel)

	// 数据库（失败会直接 Fatal）
	db := app.MustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	rc := app.NewCache(cfg, log)
	if rc != nil {
		defer rc.Close()
	}

	jwter := app.NewJWTer(cfg)
	userSvc := app.NewUserService(cfg, db, rc, log)

	// 路由（用户端）
	reg := router.NewRegistry(
		handler.NewAuthHandler(userSvc, jwter).WithIPLimit(cfg.Limits.LoginRPS, cfg.Limits.LoginBurst),
		handler.NewProfileHandler(userSvc, jwter),
	)
	r := router.NewAPIEngine(log, reg, app.RouterOptions(cfg))

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	// 启动日志
	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("user api starting",
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("api_v1", baseURL+"/api/v1"),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := server.Run(ctx, srv, log, 10*time.Second); err != nil {
		log.Error("user api exited", zap.Error(err))
		return
	}
	log.Info("user api stopped gracefully")
}
