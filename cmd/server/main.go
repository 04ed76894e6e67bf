package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"campus-recruit/backend/config"
	"campus-recruit/backend/internal/api/handler"
	"campus-recruit/backend/internal/api/router"
	"campus-recruit/backend/internal/repository"
	"campus-recruit/backend/internal/service"
	"campus-recruit/backend/pkg/database"
	"campus-recruit/backend/pkg/jwt"
	"campus-recruit/backend/pkg/logger"
	"campus-recruit/backend/pkg/redis"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径")
	flag.Parse()

	// ── 配置 ──
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// ── 日志 ──
	zapLogger, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer zapLogger.Sync()

	// ── 数据库与迁移 ──
	db, err := database.NewDB(&cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("初始化数据库失败", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		zapLogger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, zapLogger); err != nil {
		zapLogger.Fatal("执行数据库迁移失败", zap.Error(err))
	}

	// ── Redis（可选，失败时降级）──
	rdb, err := redis.NewClient(&cfg.Redis, zapLogger)
	if err != nil {
		zapLogger.Warn("Redis 不可用，Token 黑名单与限流降级", zap.Error(err))
		rdb = nil
	} else {
		defer rdb.Close()
	}

	// ── 组装各层 ──
	jwtMgr := jwt.NewManager(&cfg.Auth)
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, rdb, zapLogger)
	h := handler.NewHandler(svc, zapLogger)
	engine := router.New(cfg, h, jwtMgr, rdb, repo.User, zapLogger)

	// ── HTTP 服务 ──
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zapLogger.Info("HTTP 服务启动", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("HTTP 服务异常退出", zap.Error(err))
		}
	}()

	// ── 优雅退出 ──
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("收到退出信号，开始关闭")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("关闭 HTTP 服务失败", zap.Error(err))
	}

	if err := sqlDB.Close(); err != nil {
		zapLogger.Error("关闭数据库连接失败", zap.Error(err))
	}

	zapLogger.Info("服务已退出")
}
