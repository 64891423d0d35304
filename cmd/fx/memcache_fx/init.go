package memcache_fx

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"jobboard/internal/config"
	"jobboard/internal/infra"
	mem "jobboard/pkg/memcache"
)

var Module = fx.Provide(provideRedisClient, provideSessionStore)

// provideRedisClient yields a nil client when REDIS_URL is unset.
func provideRedisClient(lc fx.Lifecycle, cfg config.RedisConfig) (*redis.Client, error) {
	client, err := infra.OpenRedis(cfg)
	if err != nil || client == nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	return client, nil
}

func provideSessionStore(client *redis.Client) mem.SessionStore {
	if client == nil {
		return mem.NewRevokedSessions()
	}
	return mem.NewRedisSessions(client)
}
