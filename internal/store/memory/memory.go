// Package memory is a process-local KV backend, used for tests and for
// throwaway sessions (memory:// DSN).
package memory

import (
	"context"
	"sync"

	"comicstudio/internal/store"
)

var _ store.KV = (*Client)(nil)

type Client struct {
	mu      sync.RWMutex
	records map[string][]byte
}

func New() *Client {
	return &Client{records: make(map[string][]byte)}
}

func (c *Client) EnsureSchema(ctx context.Context) error { return nil }

func (c *Client) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, ok := c.records[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

func (c *Client) Set(ctx context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records[key] = append([]byte(nil), value...)
	return nil
}

func (c *Client) Close(ctx context.Context) error { return nil }
