// File: internal/infra/redis/redis_client.go
package redis

import (
	"context"

	"github.com/go-redis/redis/v8"

	"referral-backend/internal/config"
)

// Client is a thin wrapper that owns the redis connection lifecycle.
type Client struct {
	cli *redis.Client
}

func NewClient(ctx context.Context, cfg *config.RedisConfig) (*Client, error) {
	opts := &redis.Options{
		Addr:     cfg.URL,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	c := redis.NewClient(opts)
	if err := c.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &Client{cli: c}, nil
}

func (c *Client) Close() error { return c.cli.Close() }
