package sqlite

import (
	"context"
	"testing"
)

func openMemory(t *testing.T) *Client {
	t.Helper()
	ctx := context.Background()
	c, err := New(ctx, "sqlite://:memory:")
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	t.Cleanup(func() { c.Close(ctx) })
	if err := c.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensuring schema: %v", err)
	}
	return c
}

func TestRecords(t *testing.T) {
	ctx := context.Background()
	c := openMemory(t)

	if _, ok, err := c.Get(ctx, "comic_studio_data"); err != nil || ok {
		t.Fatalf("expected no record, got ok=%v err=%v", ok, err)
	}

	if err := c.Set(ctx, "comic_studio_data", []byte(`[{"id":"u1"}]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := c.Set(ctx, "comic_studio_data", []byte(`[]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, ok, err := c.Get(ctx, "comic_studio_data")
	if err != nil || !ok {
		t.Fatalf("expected record, got ok=%v err=%v", ok, err)
	}
	if string(got) != "[]" {
		t.Fatalf("expected overwritten value, got %q", got)
	}

	if err := c.EnsureSchema(ctx); err != nil {
		t.Fatalf("schema should be idempotent: %v", err)
	}

	rows, err := c.RunSQL(ctx, "SELECT key FROM records WHERE key = ?", map[string]any{"1": "comic_studio_data"})
	if err != nil {
		t.Fatalf("run sql: %v", err)
	}
	if len(rows) != 1 || rows[0]["key"] != "comic_studio_data" {
		t.Fatalf("unexpected rows: %v", rows)
	}

	rows, err = c.RunSQL(ctx, "SELECT value FROM records WHERE key = ?", map[string]any{"1": "comic_studio_data"})
	if err != nil {
		t.Fatalf("run sql: %v", err)
	}
	if len(rows) != 1 || rows[0]["value"] != "[]" {
		t.Fatalf("expected stored JSON as text, got %#v", rows)
	}
}
