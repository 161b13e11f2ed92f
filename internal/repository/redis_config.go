package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"message-digest-admin/internal/store"
)

// RedisConfigStorage keeps each config object as one JSON value at config:<name>.
type RedisConfigStorage struct {
	kv store.KV
}

func NewRedisConfigStorage(kv store.KV) *RedisConfigStorage {
	return &RedisConfigStorage{kv: kv}
}

var _ ConfigStorage = (*RedisConfigStorage)(nil)

func configKey(name string) string { return "config:" + name }

func (s *RedisConfigStorage) Read(ctx context.Context, name string) (map[string]any, error) {
	raw, err := s.kv.Get(ctx, configKey(name))
	if err != nil {
		if errors.Is(err, store.ErrMiss) {
			return nil, fmt.Errorf("%s: %w", name, ErrConfigNotFound)
		}
		return nil, fmt.Errorf("failed to read config %s: %w", name, err)
	}
	data := map[string]any{}
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", name, err)
	}
	if data == nil {
		data = map[string]any{}
	}
	return data, nil
}

func (s *RedisConfigStorage) Write(ctx context.Context, name string, data map[string]any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode config %s: %w", name, err)
	}
	if err := s.kv.Set(ctx, configKey(name), string(raw), 0); err != nil {
		return fmt.Errorf("failed to write config %s: %w", name, err)
	}
	return nil
}
