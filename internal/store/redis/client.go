// Package redis keeps the workbench records as plain Redis strings.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"comicstudio/internal/store"
)

var _ store.KV = (*Client)(nil)

type Client struct {
	rdb    *redis.Client
	prefix string
}

// New connects to the server named by a redis:// or rediss:// URL. Every key
// is namespaced by prefix, so several projects can share one database.
func New(ctx context.Context, url, prefix string) (*Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return &Client{rdb: rdb, prefix: trimPrefix(prefix)}, nil
}

func trimPrefix(prefix string) string {
	return strings.TrimSuffix(prefix, ":")
}

func (c *Client) key(k string) string {
	if c.prefix == "" {
		return k
	}
	return c.prefix + ":" + k
}

func (c *Client) EnsureSchema(ctx context.Context) error { return nil }

func (c *Client) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := c.rdb.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading record %s: %w", key, err)
	}
	return value, true, nil
}

func (c *Client) Set(ctx context.Context, key string, value []byte) error {
	if err := c.rdb.Set(ctx, c.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("writing record %s: %w", key, err)
	}
	return nil
}

func (c *Client) Close(ctx context.Context) error {
	return c.rdb.Close()
}
