package repository

import (
	"context"
	"errors"

	"message-digest-admin/internal/domain"
)

// ErrQuery marks a failed staging query. Callers must not treat it as "no items".
var ErrQuery = errors.New("staging query failed")

// StagingRepository 待发送内容 Repository 接口
// 只读：从 digest 暂存记录中查询内容
type StagingRepository interface {
	// ForEachStaged streams records with the given status, in digest order.
	// Each call re-runs the query. Returning an error from fn stops iteration
	// and is returned as is.
	ForEachStaged(ctx context.Context, status string, fn func(domain.StagedItem) error) error

	// ListStaged collects ForEachStaged into a slice.
	ListStaged(ctx context.Context, status string) ([]domain.StagedItem, error)
}

func collectStaged(ctx context.Context, repo StagingRepository, status string) ([]domain.StagedItem, error) {
	items := []domain.StagedItem{}
	err := repo.ForEachStaged(ctx, status, func(it domain.StagedItem) error {
		items = append(items, it)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}
