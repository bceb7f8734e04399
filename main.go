package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"messageboard/internal/app"
	"messageboard/internal/config"
	"messageboard/internal/utils"

	"go.uber.org/zap"
)

// @title Anonymous Message Board API
// @version 1.0
// @description Threads and replies on named boards, deletable with a per-post password.
// @BasePath /api
func main() {
	bootLogger, err := utils.NewLogger(os.Getenv("ENV"), "info")
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}

	utils.LoadEnv(bootLogger)

	cfg, err := config.LoadConfig()
	if err != nil {
		bootLogger.Fatal("Failed to load config", zap.Error(err))
	}

	logger, err := utils.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		bootLogger.Fatal("Failed to initialize zap logger", zap.Error(err))
	}
	_ = bootLogger.Sync()
	defer logger.Sync()

	logger.Info("Config loaded",
		zap.String("server_port", cfg.ServerPort),
		zap.String("store_driver", cfg.StoreDriver),
		zap.Bool("redis", cfg.RedisURL != ""),
		zap.String("env", cfg.Env),
	)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	application, err := app.Bootstrap(ctx, &cfg, logger)
	if err != nil {
		logger.Fatal("Failed to bootstrap application", zap.Error(err))
	}

	addr := ":" + cfg.ServerPort
	srv := &http.Server{
		Addr:              addr,
		Handler:           application.Router.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server started", zap.String("addr", "localhost"+addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server stopped with error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	stop()
	if err := application.Close(shutdownCtx); err != nil {
		logger.Warn("Failed to close connections", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}
