// Package redis opens the connection backing the shared reference cache.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"courtpub/internal/platform/config"
)

// Client is the reference cache connection.
type Client struct {
	*redis.Client
	addr string
}

// New opens the cache named by cfg.URL and checks it answers within the dial
// timeout. No URL means no shared cache: New returns nil, nil and every
// replica serves its own YAML seed.
func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}
	opts, err := options(cfg)
	if err != nil {
		return nil, err
	}

	client := &Client{Client: redis.NewClient(opts), addr: opts.Addr}
	pingCtx := ctx
	if opts.DialTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, opts.DialTimeout)
		defer cancel()
	}
	if err := client.Check(pingCtx); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// options applies the non-zero pool and timeout settings over whatever the
// URL carries.
func options(cfg config.RedisConfig) (*redis.Options, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse reference cache URL: %w", err)
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if cfg.MinIdleConns > 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if cfg.ReadTimeout > 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if cfg.WriteTimeout > 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}
	return opts, nil
}

// Check pings the cache. It is registered as the "reference_cache" health
// check.
func (c *Client) Check(ctx context.Context) error {
	if err := c.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("reference cache %s unreachable: %w", c.addr, err)
	}
	return nil
}
