package store

import (
	"context"

	"github.com/nikogura/candidate-scorer/pkg/config"
	"github.com/pkg/errors"
)

// Open builds the store selected by the configuration.
func Open(ctx context.Context, cfg config.StoreConfig) (s Store, err error) {
	switch cfg.Backend {
	case "", config.BackendMemory:
		s = NewMemoryStore()
	case config.BackendFile:
		var fs *FileStore
		fs, err = NewFileStore(cfg.Dir)
		if err != nil {
			return s, err
		}
		s = fs
	case config.BackendRedis:
		var rs *RedisStore
		rs, err = DialRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.KeyPrefix)
		if err != nil {
			return s, err
		}
		s = rs
	default:
		err = errors.Errorf("unknown store backend %q", cfg.Backend)
	}
	return s, err
}
