package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/MasterMIS/ERP-Google-Sheet-sub000/config"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/api/handler"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/api/router"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/repository"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/service"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/pkg/blob"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/pkg/jwt"
	applogger "github.com/MasterMIS/ERP-Google-Sheet-sub000/pkg/logger"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/pkg/redis"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/pkg/sheets"
)

func main() {
	// 1. configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// 2. logging
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. spreadsheet record store
	store := sheets.NewClient(&cfg.Sheets, logger)

	// 4. redis (optional: a failed connection degrades session
	// revocation and rate limiting, it never blocks startup)
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable, session revocation disabled", zap.Error(err))
		rdb = nil
	}

	// 5. session tokens and attachment uploads
	jwtMgr := jwt.NewManager(&cfg.Auth)
	uploader := blob.NewClient(&cfg.Blob)

	// 6. dependency chain: repository -> service -> handler
	repo := repository.NewRepository(store)
	svc := service.NewService(cfg, repo, jwtMgr, rdb, uploader, logger)
	h := handler.NewHandler(svc, jwtMgr)

	// 7. routes
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 8. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	// 9. wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}

	if rdb != nil {
		rdb.Close()
	}

	logger.Info("stopped")
}
