package storage

import (
	"errors"

	"github.com/shivam041/riseapp/internal"
	"github.com/shivam041/riseapp/internal/config"
)

func NewKVStore(cfg *config.Config, logger internal.Logger) (KVStore, error) {
	switch cfg.KVBackend {
	case "file":
		return NewFileStore(cfg.KVFile, logger)
	case "sqlite":
		return NewSQLiteStore(cfg.SQLitePath, logger)
	case "redis":
		return NewRedisStore(cfg.RedisAddr, cfg.RedisDB, logger)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, errors.New("storage: unknown kv backend: " + cfg.KVBackend)
	}
}

func NewUserStore(cfg *config.Config, logger internal.Logger) (UserStore, error) {
	switch cfg.UserBackend {
	case "postgres":
		return NewPostgresUserStore(cfg.PostgresDSN, logger)
	case "memory":
		return NewMemoryUserStore(logger), nil
	default:
		return nil, errors.New("storage: unknown user backend: " + cfg.UserBackend)
	}
}
