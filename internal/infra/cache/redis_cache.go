// Package cache provides the analytics cache implementations.
package cache

import (
	"context"
	"log/slog"
	"time"

	"inventra/config"
	"inventra/internal/domain/lifecycle"
	"inventra/internal/domain/service"
	"inventra/internal/errors"

	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

const defaultTTL = 5 * time.Minute

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// redisAnalyticsCache implements service.AnalyticsCache backed by redis.
type redisAnalyticsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New builds the analytics cache. Without redis configuration it returns the
// no-op cache so the analytics path works in minimal deployments.
func New(params Params) service.AnalyticsCache {
	if params.Config.Redis == nil || params.Config.Redis.Addr == "" {
		params.Logger.Info("Redis not configured, analytics cache disabled")

		return NoopAnalyticsCache{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     params.Config.Redis.Addr,
		Password: params.Config.Redis.Password,
		DB:       params.Config.Redis.DB,
	})

	ttl := params.Config.Redis.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			return errors.Wrap(client.Ping(ctx).Err(), "failed to ping redis")
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return &redisAnalyticsCache{client: client, ttl: ttl}
}

// Get retrieves a cached payload. A redis miss is not an error.
func (c *redisAnalyticsCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to read analytics cache")
	}

	return val, true, nil
}

// Set stores a payload under the key with the configured TTL.
func (c *redisAnalyticsCache) Set(ctx context.Context, key string, payload []byte) error {
	if len(payload) == 0 {
		return nil
	}

	return errors.Wrap(c.client.Set(ctx, key, payload, c.ttl).Err(), "failed to write analytics cache")
}

// Invalidate drops every cached payload for the given business.
func (c *redisAnalyticsCache) Invalidate(ctx context.Context, businessKey string) error {
	iter := c.client.Scan(ctx, 0, businessKey+":*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return errors.Wrap(err, "failed to invalidate analytics cache")
		}
	}

	return errors.Wrap(iter.Err(), "failed to scan analytics cache keys")
}
