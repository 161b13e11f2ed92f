package repository

import (
	"context"
	"sync"

	"message-digest-admin/internal/domain"
)

// MemoryStagingRepository supports the review form when DB is disabled.
type MemoryStagingRepository struct {
	mu    sync.RWMutex
	items map[string][]domain.StagedItem // status -> items, in insertion order
}

func NewMemoryStagingRepository() *MemoryStagingRepository {
	return &MemoryStagingRepository{items: map[string][]domain.StagedItem{}}
}

var _ StagingRepository = (*MemoryStagingRepository)(nil)

// Stage appends items under status.
func (r *MemoryStagingRepository) Stage(status string, items ...domain.StagedItem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[status] = append(r.items[status], items...)
}

func (r *MemoryStagingRepository) ForEachStaged(_ context.Context, status string, fn func(domain.StagedItem) error) error {
	r.mu.RLock()
	snapshot := append([]domain.StagedItem(nil), r.items[status]...)
	r.mu.RUnlock()

	for _, it := range snapshot {
		if err := fn(it); err != nil {
			return err
		}
	}
	return nil
}

func (r *MemoryStagingRepository) ListStaged(ctx context.Context, status string) ([]domain.StagedItem, error) {
	return collectStaged(ctx, r, status)
}
