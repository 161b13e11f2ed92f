package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// PostgresConfigStorage 配置存储（config 表，data 为 JSON）
type PostgresConfigStorage struct {
	db         *sql.DB
	collection string
}

// NewPostgresConfigStorage uses the default (empty) collection.
func NewPostgresConfigStorage(db *sql.DB) *PostgresConfigStorage {
	return &PostgresConfigStorage{db: db}
}

var _ ConfigStorage = (*PostgresConfigStorage)(nil)

func (s *PostgresConfigStorage) Read(ctx context.Context, name string) (map[string]any, error) {
	query := `
		SELECT data
		FROM config
		WHERE collection = $1 AND name = $2
	`
	var raw sql.NullString
	err := s.db.QueryRowContext(ctx, query, s.collection, name).Scan(&raw)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", name, ErrConfigNotFound)
		}
		return nil, fmt.Errorf("failed to read config %s: %w", name, err)
	}

	data := map[string]any{}
	if raw.Valid && raw.String != "" {
		if err := json.Unmarshal([]byte(raw.String), &data); err != nil {
			return nil, fmt.Errorf("failed to decode config %s: %w", name, err)
		}
	}
	if data == nil {
		data = map[string]any{}
	}
	return data, nil
}

func (s *PostgresConfigStorage) Write(ctx context.Context, name string, data map[string]any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode config %s: %w", name, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO config (collection, name, data)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (collection, name)
		 DO UPDATE SET data = EXCLUDED.data`,
		s.collection, name, string(raw),
	)
	if err != nil {
		return fmt.Errorf("failed to write config %s: %w", name, err)
	}
	return nil
}
