package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"luma-service/config"
	"luma-service/internal/cache"
	"luma-service/internal/hashing"
	"luma-service/internal/producer"
	"luma-service/internal/repository"
	"luma-service/internal/router"
	"luma-service/internal/service"
	"luma-service/internal/token"
	"luma-service/pkg/database"
	"luma-service/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}

	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)
	db := database.ConnectDB(&cfg.DB.Config, log)
	defer database.CloseDB(db, log)

	repos := repository.New(db)
	hasher := hashing.NewBcrypt(0)
	tokens := token.NewHSProvider(cfg.JWT.AccessSecret, cfg.JWT.Issuer, cfg.JWT.Audience)

	authSvc := service.NewAuthService(repos.Users, repos.Employees, hasher, tokens, cfg.JWT.AccessTTL, log)
	catalogSvc := service.NewCatalogService(repos, log)

	// Tracking cache is optional (nil disables lookups)
	var trackingCache service.TrackingCache
	if cfg.Redis.Enabled {
		rc, err := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			time.Duration(cfg.Redis.TTLSeconds)*time.Second, log)
		if err != nil {
			log.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer rc.Close()
		trackingCache = rc
	}

	// Event bus is optional as well (nil disables publishing)
	var events service.EventBus
	if len(cfg.KafkaBrokers) > 0 {
		p := producer.NewOrderProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer p.Close()
		events = p
	}

	orderSvc := service.NewOrderService(repos, events, trackingCache, log)

	r := router.Router(authSvc, orderSvc, catalogSvc, log)

	srv := &http.Server{
		Addr:    cfg.Port,
		Handler: r,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("starting Luma HTTP server", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-quit
	log.Info("shutting down Luma HTTP server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("Luma HTTP server stopped gracefully")
}
