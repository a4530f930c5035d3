package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"qrmenu/internal/cache"
	"qrmenu/internal/commons"
	"qrmenu/internal/config"
	"qrmenu/internal/infrastructure/logger"
	"qrmenu/internal/infrastructure/mysql"
	redisinfra "qrmenu/internal/infrastructure/redis"
	"qrmenu/internal/notify"
	"qrmenu/internal/order"
	"qrmenu/internal/place"
	"qrmenu/internal/server"
)

func main() {
	var cfg *config.Config
	var err error
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		cfg, err = commons.LoadConfig(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	redisClient, err := redisinfra.NewClient(cfg.Redis)
	if err != nil {
		// the cache is an accelerator, not a dependency
		zapLogger.Warn("redis unavailable, running without cache", zap.Error(err))
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
		zapLogger.Info("redis connected", zap.String("addr", cfg.Redis.Addr))
	}
	views := cache.NewViewCache(redisClient, zapLogger)

	hub := notify.NewHub(zapLogger)
	hubCtx, stopHub := context.WithCancel(context.Background())
	go hub.Run(hubCtx)

	orderCtrl := order.NewModule(db, hub, views, cfg, zapLogger)
	placeCtrl := place.NewModule(db, views, cfg, zapLogger)

	router := server.NewRouter(orderCtrl, placeCtrl, hub, zapLogger)

	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}
	stopHub()

	zapLogger.Info("server stopped gracefully")
}
