package infra

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"jobboard/internal/config"
	"jobboard/pkg/logger"
)

// OpenRedis returns nil, nil when no URL is configured.
func OpenRedis(cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.URL == "" {
		logger.Info().Msg("REDIS_URL not set, using in-process session store")
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	logger.Info().Str("addr", opts.Addr).Msg("Redis connected")
	return client, nil
}
