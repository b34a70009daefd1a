package cache

import (
	"context"
	"time"

	"rehearsal-room-api/core/config"
	"rehearsal-room-api/core/logger"

	"github.com/redis/go-redis/v9"
)

// NewClient connects to redis using the given configuration. Redis is
// optional here: it backs rate limiting and the maintenance worker, not the
// ledger itself. When it is unconfigured or unreachable the function returns
// nil and those features degrade to no-ops.
func NewClient(cfg config.RedisConfig) *redis.Client {
	if !cfg.Configured() {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("Cache:NewClient:PingFailed", "addr", cfg.Addr, "error", err)
		_ = client.Close()
		return nil
	}

	logger.Info("Cache:NewClient:Connected", "addr", cfg.Addr, "db", cfg.DB)
	return client
}
