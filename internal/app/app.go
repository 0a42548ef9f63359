// Package app 两个入口共用的依赖装配
package app

import (
	"context"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"user-profile-service/internal/core/auth"
	"user-profile-service/internal/core/cache"
	"user-profile-service/internal/core/config"
	"user-profile-service/internal/core/database"
	"user-profile-service/internal/core/logger"
	"user-profile-service/internal/domain"
	"user-profile-service/internal/repo"
	"user-profile-service/internal/service"
	"user-profile-service/internal/transport/http/router"
)

func NewLogger(cfg *config.Config, service string) (*zap.Logger, func()) {
	f := cfg.Log.File
	return logger.New(logger.Options{
		Level:            cfg.Log.Level,
		JSON:             cfg.Log.JSON,
		Service:          service,
		Env:              cfg.App.Env,
		SampleFirst:      100,
		SampleThereafter: 100,
		Rotate: logger.FileRotate{
			Enable:     f.Enable,
			Filename:   f.Filename,
			MaxSizeMB:  f.MaxSizeMB,
			MaxBackups: f.MaxBackups,
			MaxAgeDays: f.MaxAgeDays,
			Compress:   f.Compress,
		},
	})
}

// MustOpenDB 失败直接 Fatal
func MustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	gl, err := logger.ToStdLogger(l.Named("gorm"), zapcore.WarnLevel)
	if err != nil {
		l.Fatal("gorm logger", zap.Error(err))
	}
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		Logger:             gl,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(&domain.User{}); err != nil {
			l.Fatal("automigrate failed", zap.Error(err))
		}
		l.Info("automigrate done")
	}
	return db
}

// NewCache redis 未配置或不可达时返回 nil，服务退化为直查数据库
func NewCache(cfg *config.Config, l *zap.Logger) *cache.Cache {
	if cfg.Redis.Addr == "" {
		return nil
	}
	c := cache.New(cache.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		Prefix:   cfg.Cache.Prefix,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := c.Ping(ctx); err != nil {
		l.Warn("redis unavailable, profile cache disabled", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		_ = c.Close()
		return nil
	}
	return c
}

func NewJWTer(cfg *config.Config) *auth.JWTer {
	return &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}
}

func NewUserService(cfg *config.Config, db *gorm.DB, c *cache.Cache, l *zap.Logger) *service.UserService {
	return service.NewUserService(repo.NewUserRepo(db), c, l.Named("user"), service.Options{
		MaxLoginAttempts: cfg.Security.MaxLoginAttempts,
		BlockDuration:    time.Duration(cfg.Security.BlockHours) * time.Hour,
		ProfileTTL:       time.Duration(cfg.Cache.ProfileTTLSec) * time.Second,
	})
}

func RouterOptions(cfg *config.Config) router.Options {
	return router.Options{
		RPS:           cfg.Limits.RPS,
		Burst:         cfg.Limits.Burst,
		MaxConcurrent: cfg.Limits.MaxConcurrent,
		MaxBodyBytes:  cfg.Limits.MaxBodyKB << 10,
		Timeout:       time.Duration(cfg.Limits.RequestTimeoutSec) * time.Second,
		CORSOrigins:   cfg.CORSOrigins,
	}
}
