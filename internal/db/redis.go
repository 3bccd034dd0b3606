package db

import (
	"context"
	"time"

	"todo_backend/internal/logger"

	redis "github.com/redis/go-redis/v9"
)

// ConnectRedis opens the shared Redis client used for the session registry
// and rate-limit counters. Redis is required: sessions cannot be revoked
// without it.
func ConnectRedis(addr, password string, dbIndex int) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       dbIndex,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Fatal("failed to ping redis", "addr", addr, "error", err)
	}

	logger.Info("redis connected", "addr", addr)
	return client
}
