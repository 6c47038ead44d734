package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/shivam041/riseapp/internal"
)

// RedisStore maps the adapter contract straight onto redis string keys.
type RedisStore struct {
	client *redis.Client
	logger internal.Logger
}

func NewRedisStore(addr string, db int, logger internal.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Errorf("storage: failed to connect to redis: %v", err)
		return nil, err
	}
	return &RedisStore{client: client, logger: logger}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		s.logger.Errorf("storage: redis get failed: %v", err)
		return "", false, err
	}
	return v, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		s.logger.Errorf("storage: redis set failed: %v", err)
		return err
	}
	return nil
}

func (s *RedisStore) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		s.logger.Errorf("storage: redis del failed: %v", err)
		return err
	}
	return nil
}

// RemoveMany issues one DEL per key, matching the adapter's non-atomic
// multi-key contract rather than a single variadic DEL.
func (s *RedisStore) RemoveMany(ctx context.Context, keys []string) error {
	for _, k := range keys {
		if err := s.Remove(ctx, k); err != nil {
			return err
		}
	}
	return nil
}

func (s *RedisStore) Close() error { return s.client.Close() }

var _ KVStore = (*RedisStore)(nil)
