// Package redis manages the shared Redis client.
package redis

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectFromEnv dials Redis using REDIS_ADDR (host:port) and REDIS_PASSWORD.
// A missing address or failed ping is logged and reported as nil so callers
// can fall back to in-memory stores.
func ConnectFromEnv(ctx context.Context, logger *slog.Logger) *redis.Client {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		if logger != nil {
			logger.Warn("REDIS_ADDR not set, falling back to in-memory idempotency store")
		}
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		if logger != nil {
			logger.Warn("failed to ping redis, falling back to in-memory idempotency store", slog.String("error", err.Error()))
		}
		_ = client.Close()
		return nil
	}
	if logger != nil {
		logger.Info("redis connection established")
	}
	return client
}
