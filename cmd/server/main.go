package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fashionforward/latam-router/internal/cache"
	"github.com/fashionforward/latam-router/internal/config"
	"github.com/fashionforward/latam-router/internal/httpapi"
)

func main() {
	cfg := config.Load()

	logger := newLogger(cfg.LogLevel)
	defer logger.Sync()

	reportCache := newCache(cfg, logger)
	if closer, ok := reportCache.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	handler := httpapi.New(logger, reportCache, cfg.ReportCacheTTL, cfg.ReportWorkers, cfg.DefaultReportCount)
	router := mux.NewRouter()
	handler.RegisterRoutes(router)

	server := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutting down server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", zap.Error(err))
		}
	}()

	logger.Info("latam router starting", zap.String("port", cfg.Port))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}

func newLogger(level string) *zap.Logger {
	zapCfg := zap.NewProductionConfig()
	parsedLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		parsedLevel = zapcore.InfoLevel
	}
	zapCfg.Level = zap.NewAtomicLevelAt(parsedLevel)

	logger, err := zapCfg.Build()
	if err != nil {
		logger = zap.NewNop()
	}
	return logger
}

func newCache(cfg *config.Config, logger *zap.Logger) cache.Cache {
	if cfg.RedisAddr == "" {
		return cache.NewMemoryCache()
	}
	redisCache, err := cache.NewRedisCache(cfg.RedisAddr, logger)
	if err != nil {
		logger.Warn("redis unavailable, falling back to in-memory cache", zap.Error(err))
		return cache.NewMemoryCache()
	}
	return redisCache
}
