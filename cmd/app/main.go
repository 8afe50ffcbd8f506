package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coursehub/config"
	"coursehub/internal/application/usecase"
	"coursehub/internal/infrastructure/cache"
	"coursehub/internal/infrastructure/repository"
	"coursehub/internal/infrastructure/security"
	"coursehub/internal/infrastructure/storage"
	"coursehub/internal/logger"
	"coursehub/internal/middleware"
	grpc_server "coursehub/internal/transport/grpc"
	handlers "coursehub/internal/transport/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	if log.GetLevel() < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	backend, err := storage.Open(ctx, storage.Options{
		Driver:         cfg.StorageDriver,
		DataDir:        cfg.DataDir,
		BadgerPath:     cfg.BadgerPath,
		BadgerInMemory: cfg.BadgerInMemory,
		PostgresDSN:    cfg.PostgresDSN(),
		Collections:    repository.Collections,
		Logger:         log,
	})
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer backend.Close()

	catalog := usecase.NewCatalog(repository.NewStore(backend), log)

	var (
		responseCache cache.Cache
		counter       middleware.Counter
	)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer rdb.Close()
		log.WithField("addr", cfg.RedisAddr).Info("connected to redis")

		responseCache = cache.NewRedis(rdb, log)
		counter = middleware.NewRedisCounter(rdb)
	} else {
		responseCache = cache.NewMemory()
		counter = middleware.NewMemoryCounter()
	}

	var tokens *security.TokenManager
	if cfg.AccessSecret != "" {
		tokens = security.NewTokenManager(cfg.AccessSecret)
	}
	if tokens == nil && cfg.APIKeyHash == "" {
		log.Warn("no ACCESS_SECRET or API_KEY_HASH set, write routes are open")
	}

	router := handlers.NewRouter(handlers.RouterConfig{
		Catalog:        catalog,
		Cache:          responseCache,
		CacheTTL:       cfg.CacheTTL,
		Limiter:        middleware.NewRateLimiter(counter, log),
		RateLimit:      cfg.RateLimit,
		RateWindow:     cfg.RateWindow,
		AllowedOrigins: cfg.Origins(),
		Tokens:         tokens,
		APIKeyHash:     cfg.APIKeyHash,
		Logger:         log,
	})

	srv := &http.Server{
		Addr:              cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("HTTP server running on %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to serve HTTP: %v", err)
		}
	}()

	var grpcServer *grpc.Server
	if cfg.GRPCPort != "" {
		lis, err := net.Listen("tcp", cfg.GRPCPort)
		if err != nil {
			log.Fatalf("Failed to listen: %v", err)
		}
		grpcServer = grpc_server.NewServer(grpc_server.NewCatalogServer(catalog, log), log)

		go func() {
			log.Infof("gRPC server running on %s", cfg.GRPCPort)
			if err := grpcServer.Serve(lis); err != nil {
				log.Fatalf("Failed to serve gRPC: %v", err)
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("HTTP shutdown failed")
	}
	if grpcServer != nil {
		grpcServer.GracefulStop()
	}
}
