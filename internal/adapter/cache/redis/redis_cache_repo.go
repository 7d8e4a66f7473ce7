package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ayusharma-ctrl/Spyne/internal/config"
	"github.com/ayusharma-ctrl/Spyne/internal/port/cache"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type redisCacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisClient(cfg *config.RedisConfig, logger *zap.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", zap.String("address", cfg.Address), zap.Error(err))
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Address, err)
	}
	logger.Info("Successfully connected to Redis", zap.String("address", cfg.Address))
	return rdb, nil
}

func NewRedisCacheRepository(client *redis.Client, logger *zap.Logger) cache.CacheRepository {
	return &redisCacheRepository{
		client: client,
		logger: logger,
	}
}

func (r *redisCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, cache.ErrNotFound
		}
		r.logger.Error("Redis Get operation failed", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("redisCacheRepository.Get for key '%s': %w", key, err)
	}
	return val, nil
}

func (r *redisCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		r.logger.Error("Redis Set operation failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("redisCacheRepository.Set for key '%s': %w", key, err)
	}
	r.logger.Debug("Redis Set operation successful", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *redisCacheRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Error("Redis Del operation failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("redisCacheRepository.Delete for key '%s': %w", key, err)
	}
	return nil
}

// DeleteByPrefix walks the keyspace with SCAN and deletes matching keys in
// batches. A wildcard DEL does not exist in Redis, so the sweep has to be
// cursor driven.
func (r *redisCacheRepository) DeleteByPrefix(ctx context.Context, prefix string) error {
	pattern := prefix + "*"
	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			r.logger.Error("Redis Scan operation failed", zap.String("pattern", pattern), zap.Error(err))
			return fmt.Errorf("redisCacheRepository.DeleteByPrefix scan for pattern '%s': %w", pattern, err)
		}
		if len(keys) > 0 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				r.logger.Error("Redis Del operation failed during prefix sweep",
					zap.String("pattern", pattern),
					zap.Int("keys", len(keys)),
					zap.Error(err))
				return fmt.Errorf("redisCacheRepository.DeleteByPrefix del for pattern '%s': %w", pattern, err)
			}
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	r.logger.Debug("Redis prefix sweep complete", zap.String("pattern", pattern))
	return nil
}
