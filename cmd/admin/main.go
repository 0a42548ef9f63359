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
	log, cleanup := app.NewLogger(cfg, "user-admin")
	defer cleanup()
	defer logger.RedirectStdLog(log, zapcore.InfoLevel)()
	gin.DefaultWriter = logger.ToWriter(log, zapcore.DebugLevel)

	// DB 连接（失败直接 Fatal）
	db := app.MustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	rc := app.NewCache(cfg, log)
	if rc != nil {
		defer rc.Close()
	}

	jwter := app.NewJWTer(cfg)
	userSvc := app.NewUserService(cfg, db, rc, log)

	// 路由（后台端）
	reg := router.NewRegistry(handler.NewAdminHandler(userSvc))
	r := router.NewAdminEngine(log, jwter, reg, app.RouterOptions(cfg))

	addr := server.Addr(cfg.App.Admin.Host, cfg.App.Admin.Port)
	srv := server.BuildServer(addr, r, 5*time.Second, 10*time.Second, 60*time.Second)

	// 启动前打印可点击地址
	host4human := cfg.App.Admin.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.Admin.Port)
	log.Info("admin api starting",
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("admin_v1", baseURL+"/admin/v1"),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := server.Run(ctx, srv, log, 10*time.Second); err != nil {
		log.Error("admin api exited", zap.Error(err))
		return
	}
	log.Info("admin api stopped gracefully")
}
