// Package settings provides named configuration objects read and written
// through a repository.ConfigStorage.
package settings

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"message-digest-admin/internal/repository"
)

var (
	// ErrPersistence wraps every failed Save.
	ErrPersistence = errors.New("configuration could not be saved")
	// ErrImmutable is returned when saving an object loaded read-only.
	ErrImmutable = errors.New("configuration object is read-only")
)

// Config 命名配置对象
// Set 只修改内存中的数据，Save 时整体写回存储
type Config struct {
	name     string
	storage  repository.ConfigStorage
	data     map[string]any
	editable bool
}

func (c *Config) Name() string { return c.name }

// Get returns the raw value of key, or nil.
func (c *Config) Get(key string) any {
	return c.data[key]
}

// GetString returns key as a string; missing or non-string values yield "".
func (c *Config) GetString(key string) string {
	if s, ok := c.data[key].(string); ok {
		return s
	}
	return ""
}

// Set stages a value. It returns c for chaining with Save.
func (c *Config) Set(key string, value any) *Config {
	c.data[key] = value
	return c
}

// Keys lists the keys present, sorted.
func (c *Config) Keys() []string {
	keys := make([]string, 0, len(c.data))
	for k := range c.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Save writes the whole object. On failure the staged values stay in c so the
// caller can report them back; nothing is retried.
func (c *Config) Save(ctx context.Context) error {
	if !c.editable {
		return fmt.Errorf("%s: %w", c.name, ErrImmutable)
	}
	if err := c.storage.Write(ctx, c.name, c.data); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

// Factory loads configuration objects from one storage.
type Factory struct {
	storage repository.ConfigStorage
}

func NewFactory(storage repository.ConfigStorage) *Factory {
	return &Factory{storage: storage}
}

// Editable loads name for modification. A never-saved object loads empty.
func (f *Factory) Editable(ctx context.Context, name string) (*Config, error) {
	return f.load(ctx, name, true)
}

// Immutable loads name read-only.
func (f *Factory) Immutable(ctx context.Context, name string) (*Config, error) {
	return f.load(ctx, name, false)
}

func (f *Factory) load(ctx context.Context, name string, editable bool) (*Config, error) {
	data, err := f.storage.Read(ctx, name)
	if err != nil {
		if !errors.Is(err, repository.ErrConfigNotFound) {
			return nil, fmt.Errorf("failed to load config %s: %w", name, err)
		}
		data = map[string]any{}
	}
	return &Config{name: name, storage: f.storage, data: data, editable: editable}, nil
}
