package main

import (
	"context"
	"fmt"
	"strings"

	"comicstudio/internal/config"
	"comicstudio/internal/store"
	"comicstudio/internal/store/memory"
	"comicstudio/internal/store/postgres"
	redisstore "comicstudio/internal/store/redis"
	"comicstudio/internal/store/sqlite"
)

func openKV(ctx context.Context, cfg *config.ProjectConfig) (store.KV, error) {
	dsn := cfg.Storage.DSN
	scheme, _, _ := strings.Cut(dsn, "://")
	switch strings.ToLower(scheme) {
	case "sqlite":
		return sqlite.New(ctx, dsn)
	case "postgres", "postgresql":
		return postgres.New(ctx, dsn)
	case "redis", "rediss":
		return redisstore.New(ctx, dsn, cfg.Storage.Prefix)
	case "memory":
		return memory.New(), nil
	}
	return nil, fmt.Errorf("unsupported storage scheme %q", scheme)
}
