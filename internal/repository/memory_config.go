package repository

import (
	"context"
	"fmt"
	"sync"
)

// MemoryConfigStorage is the DB-less config backend (dev, tests, CLI dry runs).
type MemoryConfigStorage struct {
	mu      sync.RWMutex
	objects map[string]map[string]any
}

func NewMemoryConfigStorage() *MemoryConfigStorage {
	return &MemoryConfigStorage{objects: map[string]map[string]any{}}
}

var _ ConfigStorage = (*MemoryConfigStorage)(nil)

func (s *MemoryConfigStorage) Read(_ context.Context, name string) (map[string]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrConfigNotFound)
	}
	return cloneData(obj), nil
}

func (s *MemoryConfigStorage) Write(_ context.Context, name string, data map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[name] = cloneData(data)
	return nil
}

func cloneData(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
