package repository

import (
	"context"
	"database/sql"
	"fmt"

	"message-digest-admin/internal/domain"
)

// PostgresStagingRepository 基于 Drupal 数据库的待发送内容查询
type PostgresStagingRepository struct {
	db *sql.DB
}

func NewPostgresStagingRepository(db *sql.DB) *PostgresStagingRepository {
	return &PostgresStagingRepository{db: db}
}

// 确保实现了接口
var _ StagingRepository = (*PostgresStagingRepository)(nil)

const stagedQuery = `
		SELECT
			r.field_node_reference_target_id,
			n.title
		FROM message_digest d
		JOIN message__field_node_reference r ON r.entity_id = d.mid
		JOIN node_field_data n ON n.nid = r.field_node_reference_target_id
		WHERE d.status = $1
		ORDER BY d.id
	`

func (r *PostgresStagingRepository) ForEachStaged(ctx context.Context, status string, fn func(domain.StagedItem) error) error {
	rows, err := r.db.QueryContext(ctx, stagedQuery, status)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var it domain.StagedItem
		var title sql.NullString
		if err := rows.Scan(&it.NodeID, &title); err != nil {
			return fmt.Errorf("%w: failed to scan staged item: %w", ErrQuery, err)
		}
		it.Title = title.String
		if err := fn(it); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrQuery, err)
	}
	return nil
}

func (r *PostgresStagingRepository) ListStaged(ctx context.Context, status string) ([]domain.StagedItem, error) {
	return collectStaged(ctx, r, status)
}
