package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/servery/servery/internal/config"
	"github.com/servery/servery/internal/domain/repository"
	"github.com/servery/servery/internal/storage/postgres"
)

// Module wires the optional Redis cache and provides the repository.Store the
// application consumes: the plain PostgreSQL storage when no Redis address is
// configured, the caching decorator otherwise.
var Module = fx.Options(
	fx.Provide(newRedisClient, newStore),
	fx.Invoke(registerLifecycle),
)

type clientParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
}

func newRedisClient(p clientParams) (*redis.Client, error) {
	if p.Config.RedisAddress == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         p.Config.RedisAddress,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(p.Ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}

type storeParams struct {
	fx.In

	Storage *postgres.Storage
	Client  *redis.Client
	Config  *config.Config
	Logger  *slog.Logger
}

func newStore(p storeParams) repository.Store {
	if p.Client == nil {
		return p.Storage
	}
	p.Logger.Info("restaurant cache enabled",
		"address", p.Config.RedisAddress,
		"ttl", p.Config.MenuCacheTTL,
	)
	return NewStore(p.Storage, p.Client, p.Config.MenuCacheTTL, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, client *redis.Client) {
	if client == nil {
		return
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
}
