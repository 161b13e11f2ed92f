package repository

import (
	"context"
	"errors"
)

// ErrConfigNotFound is returned by ConfigStorage.Read for objects never written.
var ErrConfigNotFound = errors.New("config object not found")

// ConfigStorage 配置对象存储接口
// 一个配置对象（如 message_digest_admin.adminsettings）整体读写
type ConfigStorage interface {
	// Read returns the stored data of name, or ErrConfigNotFound.
	Read(ctx context.Context, name string) (map[string]any, error)

	// Write replaces the whole object. Concurrent writers: last one wins.
	Write(ctx context.Context, name string, data map[string]any) error
}
