package database

import (
	"context"
	"fmt"
	"time"

	"github.com/gdugdh24/devconnector-backend/internal/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient creates the client backing the post cache.
func NewRedisClient(ctx context.Context, cfg *config.RedisConfig, log *zap.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.GetAddr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Info("connected to redis",
		zap.String("addr", cfg.GetAddr()),
		zap.Int("db", cfg.DB),
		zap.Int("pool_size", cfg.PoolSize))
	return client, nil
}
