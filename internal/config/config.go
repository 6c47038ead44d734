package config

import (
	"errors"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	LogLevel string

	// Local persistence adapter backend: file | sqlite | redis | memory.
	KVBackend  string
	KVFile     string
	SQLitePath string
	RedisAddr  string
	RedisDB    int

	// User/profile store backend: memory | postgres.
	UserBackend string
	PostgresDSN string

	// Base URL of the remote auth/profile API. Empty means local-only mode:
	// the session service skips the remote attempt entirely.
	RemoteBaseURL string

	// Chat collaborator. Empty endpoint disables the chat client.
	ChatEndpoint string
	ChatAPIKey   string

	ListenAddr string
}

var (
	cfg  *Config
	once sync.Once
)

func Load() *Config {
	once.Do(func() {
		_ = godotenv.Load()
		cfg = &Config{
			Env:           getEnv("APP_ENV", "development"),
			LogLevel:      getEnv("LOG_LEVEL", "info"),
			KVBackend:     getEnv("KV_BACKEND", "file"),
			KVFile:        getEnv("KV_FILE", "data/rise_store.json"),
			SQLitePath:    getEnv("SQLITE_PATH", "data/rise.db"),
			RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
			RedisDB:       0,
			UserBackend:   getEnv("USER_BACKEND", "memory"),
			PostgresDSN:   getEnv("POSTGRES_DSN", ""),
			RemoteBaseURL: getEnv("REMOTE_BASE_URL", ""),
			ChatEndpoint:  getEnv("CHAT_ENDPOINT", ""),
			ChatAPIKey:    getEnv("CHAT_API_KEY", ""),
			ListenAddr:    getEnv("LISTEN_ADDR", ":8088"),
		}
		if err := cfg.Validate(); err != nil {
			panic("Invalid config: " + err.Error())
		}
	})
	return cfg
}

func (c *Config) Validate() error {
	switch c.KVBackend {
	case "file":
		if c.KVFile == "" {
			return errors.New("KV_FILE is required when KV_BACKEND=file")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required when KV_BACKEND=sqlite")
		}
	case "redis":
		if c.RedisAddr == "" {
			return errors.New("REDIS_ADDR is required when KV_BACKEND=redis")
		}
	case "memory":
	default:
		return errors.New("KV_BACKEND must be one of: file, sqlite, redis, memory")
	}
	if c.UserBackend == "postgres" && c.PostgresDSN == "" {
		return errors.New("POSTGRES_DSN is required when USER_BACKEND=postgres")
	}
	if c.UserBackend != "postgres" && c.UserBackend != "memory" {
		return errors.New("USER_BACKEND must be one of: memory, postgres")
	}
	if c.ChatAPIKey != "" && c.ChatEndpoint == "" {
		return errors.New("CHAT_ENDPOINT is required when CHAT_API_KEY is set")
	}
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return errors.New("APP_ENV must be one of: development, staging, production")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
