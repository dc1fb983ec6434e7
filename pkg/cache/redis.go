package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tocampus/governance/pkg/config"
)

const connectTimeout = 2 * time.Second

// RedisClient owns the Redis pool shared by the content cache and sessions.
type RedisClient struct {
	client *redis.Client
}

// NewRedisClient connects to cfg.RedisURL and pings it before returning.
// cfg.RedisPoolSize caps the pool; zero keeps the go-redis default.
func NewRedisClient(ctx context.Context, cfg *config.Config) (*RedisClient, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if cfg.RedisPoolSize > 0 {
		opts.PoolSize = cfg.RedisPoolSize
		opts.MinIdleConns = max(1, cfg.RedisPoolSize/5)
	}
	if cfg.ServiceName != "" {
		opts.ClientName = cfg.ServiceName
	}
	opts.MaxRetries = 3
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	opts.PoolTimeout = 4 * time.Second

	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", opts.Addr, err)
	}
	return &RedisClient{client: rdb}, nil
}

// Ping satisfies httpx.HealthChecker.
func (r *RedisClient) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

func (r *RedisClient) Close() error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Close(); err != nil {
		return fmt.Errorf("redis close: %w", err)
	}
	return nil
}

// Client exposes the pool for components taking redis.Cmdable.
func (r *RedisClient) Client() *redis.Client {
	return r.client
}
