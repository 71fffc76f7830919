package redis

import (
	"context"
	"strconv"
	"testing"
	"time"
)

// Requires a Redis instance on localhost:6379; skipped otherwise.
func TestClientRecords(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	prefix := "comicstudio-test-" + strconv.FormatInt(time.Now().UnixNano(), 10)
	c, err := New(ctx, "redis://localhost:6379/0", prefix)
	if err != nil {
		t.Skip("Redis not available, skipping integration test")
	}
	defer c.Close(context.Background())

	ctx = context.Background()
	if _, ok, err := c.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected missing record, got ok=%v err=%v", ok, err)
	}
	if err := c.Set(ctx, "k", []byte(`[]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok, err := c.Get(ctx, "k")
	if err != nil || !ok || string(got) != "[]" {
		t.Fatalf("expected [], got %q ok=%v err=%v", got, ok, err)
	}
	c.rdb.Del(ctx, c.key("k"))
}

func TestKeyPrefix(t *testing.T) {
	tests := []struct {
		prefix string
		want   string
	}{
		{"", "comic_studio_data"},
		{"saga", "saga:comic_studio_data"},
		{"saga:", "saga:comic_studio_data"},
	}
	for _, tt := range tests {
		c := &Client{prefix: trimPrefix(tt.prefix)}
		if got := c.key("comic_studio_data"); got != tt.want {
			t.Fatalf("prefix %q: expected %q, got %q", tt.prefix, tt.want, got)
		}
	}
}
