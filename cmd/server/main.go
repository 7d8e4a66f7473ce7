package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	redisAdapter "github.com/ayusharma-ctrl/Spyne/internal/adapter/cache/redis"
	"github.com/ayusharma-ctrl/Spyne/internal/adapter/httpserver"
	natsAdapter "github.com/ayusharma-ctrl/Spyne/internal/adapter/messaging/nats"
	mongoAdapter "github.com/ayusharma-ctrl/Spyne/internal/adapter/mongo"
	minioAdapter "github.com/ayusharma-ctrl/Spyne/internal/adapter/storage/minio"
	"github.com/ayusharma-ctrl/Spyne/internal/config"
	"github.com/ayusharma-ctrl/Spyne/internal/platform/jwt"
	"github.com/ayusharma-ctrl/Spyne/internal/usecase"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	configPath := "config.yaml"
	if cp := os.Getenv("CONFIG_PATH"); cp != "" {
		configPath = cp
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Auth.JWTSecret == "" {
		log.Fatal("CARS_AUTH_JWT_SECRET is required")
	}

	zapConfig := zap.NewProductionConfig()
	if cfg.Env != "production" {
		zapConfig = zap.NewDevelopmentConfig()
	}
	logger, err := zapConfig.Build()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Configuration loaded",
		zap.String("env", cfg.Env),
		zap.String("http_port", cfg.HTTP.Port),
		zap.String("mongo_database", cfg.Mongo.Database),
	)

	mongoClient, err := mongoAdapter.NewMongoDBConnection(&cfg.Mongo)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.Error("Failed to disconnect MongoDB", zap.Error(err))
		}
	}()
	logger.Info("Successfully connected to MongoDB")

	redisClient, err := redisAdapter.NewRedisClient(&cfg.Redis, logger)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	mediaStorage, err := minioAdapter.NewMinioStorage(&cfg.MinIO, logger)
	if err != nil {
		logger.Fatal("Failed to initialize MinIO storage", zap.Error(err))
	}

	var publisher usecase.EventPublisher
	if cfg.NATS.Enabled {
		natsPublisher, err := natsAdapter.NewNATSPublisher(&cfg.NATS, logger)
		if err != nil {
			logger.Fatal("Failed to connect to NATS", zap.Error(err))
		}
		defer natsPublisher.Close()
		publisher = natsPublisher
	}

	cacheRepo := redisAdapter.NewRedisCacheRepository(redisClient, logger)
	carRepo := mongoAdapter.NewCarMongoRepository(mongoClient, cfg.Mongo.Database)
	userRepo := mongoAdapter.NewUserMongoRepository(mongoClient, cfg.Mongo.Database, logger)

	tokens := jwt.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	userUC := usecase.NewUserUseCase(userRepo, tokens, logger)
	queryUC := usecase.NewCarQueryUseCase(carRepo, cacheRepo, logger)
	mutationUC := usecase.NewCarMutationUseCase(carRepo, mediaStorage, cacheRepo, publisher, logger)

	authHandler := httpserver.NewAuthHandler(userUC, tokens, cfg.Auth.TokenTTL, cfg.Env == "production", logger)
	carHandler := httpserver.NewCarHandler(queryUC, mutationUC, logger)

	router := httpserver.NewRouter(authHandler, carHandler, tokens, cfg.Auth.APIKey, cfg.HTTP.RequestTimeout, logger)

	server := &http.Server{
		Addr:    ":" + cfg.HTTP.Port,
		Handler: router,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	logger.Info("Server stopped")
}
