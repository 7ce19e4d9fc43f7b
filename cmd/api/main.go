package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/xxz807/finscale/reports/internal/ledger/adapter/repo"
	"github.com/xxz807/finscale/reports/internal/ledger/api"
	"github.com/xxz807/finscale/reports/internal/ledger/service"
	"github.com/xxz807/finscale/reports/internal/platform/cache"
	"github.com/xxz807/finscale/reports/internal/platform/config"
	"github.com/xxz807/finscale/reports/internal/platform/database"
	"github.com/xxz807/finscale/reports/internal/platform/logger"
	"github.com/xxz807/finscale/reports/internal/platform/server"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Error reading config file: %s", err)
	}

	// 2. 初始化基础设施 (Infra)
	appLogger, err := logger.NewLogger(cfg.Server.Mode)
	if err != nil {
		log.Fatalf("Error building logger: %s", err)
	}
	defer func() { _ = appLogger.Sync() }()

	db, err := database.NewDB(cfg.Database, cfg.Server.Mode, appLogger)
	if err != nil {
		appLogger.Fatal("Database startup failed", zap.Error(err))
	}

	ctx := context.Background()
	reportCache, err := cache.New(ctx, cfg.Report.CacheBackend, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, appLogger)
	if err != nil {
		appLogger.Fatal("Cache startup failed", zap.Error(err))
	}

	// 3. 依赖注入 (Wiring)
	accountRepo := repo.NewAccountRepo(db)
	postingRepo := repo.NewPostingRepo(db)
	reportSvc := service.NewReportService(accountRepo, postingRepo, reportCache, service.Options{
		PageSize: cfg.Report.PageSize,
		CacheTTL: cfg.Report.CacheTTL,
	}, appLogger)
	reportHandler := api.NewReportHandler(reportSvc)

	// 4. 初始化 Server (Gateway)
	srv := server.NewServer(appLogger, cfg.Server.Port, cfg.Server.Mode, reportHandler)

	// 5. 启动服务
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		appLogger.Info("Shutting down gracefully")
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			appLogger.Error("Graceful shutdown failed", zap.Error(err))
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Server startup failed", zap.Error(err))
		}
	}
}
