package storage

import (
	"context"
	"fmt"

	"github.com/jaminalder/codex-binoxxo/internal/config"
)

// Open returns the backend named by cfg.Backend.
func Open(ctx context.Context, cfg config.Store) (KV, error) {
	switch cfg.Backend {
	case "memory":
		return NewMemory(), nil
	case "sqlite":
		db, err := OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return db, nil
	case "redis":
		r, err := NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		return r, nil
	}
	return nil, fmt.Errorf("%q: %w", cfg.Backend, ErrUnknownBackend)
}
