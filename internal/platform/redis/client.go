package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/phrazzld/wallet-user-api/internal/config"
	"github.com/redis/go-redis/v9"
)

// Open creates a Redis client from cfg and pings it to validate the connection.
// The caller owns the client and must Close it at shutdown.
func Open(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("empty redis addr")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}
