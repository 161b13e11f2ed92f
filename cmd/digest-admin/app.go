package main

import (
	"context"
	"database/sql"
	"fmt"

	"message-digest-admin/internal/config"
	"message-digest-admin/internal/database"
	"message-digest-admin/internal/form"
	httpapi "message-digest-admin/internal/http"
	"message-digest-admin/internal/logger"
	"message-digest-admin/internal/repository"
	"message-digest-admin/internal/service"
	"message-digest-admin/internal/settings"
	"message-digest-admin/internal/store"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// app holds the wired components shared by all commands.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	db       *sql.DB
	redis    *redis.Client
	staging  repository.StagingRepository
	settings *settings.Factory
	form     *service.StagedContentForm
}

func newApp(ctx context.Context, configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, logger.ServiceName)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	a := &app{cfg: cfg, logger: log}

	if cfg.DBEnabled {
		db, err := database.NewPostgresDB(ctx, &cfg.Database)
		if err != nil {
			a.close()
			return nil, err
		}
		a.db = db
		a.staging = repository.NewPostgresStagingRepository(db)
		log.Info("DB enabled for message-digest-admin", zap.String("host", cfg.Database.Host), zap.String("database", cfg.Database.Database))
	} else {
		// DB 未就绪：使用内存 repo
		a.staging = repository.NewMemoryStagingRepository()
		log.Warn("DB disabled, staged content is served from memory")
	}

	var storage repository.ConfigStorage
	switch cfg.Digest.SettingsBackend {
	case config.BackendPostgres:
		storage = repository.NewPostgresConfigStorage(a.db)
	case config.BackendRedis:
		a.redis = store.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		kv := store.NewRedisKV(a.redis)
		if err := kv.Ping(ctx); err != nil {
			a.close()
			return nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		storage = repository.NewRedisConfigStorage(kv)
	default:
		storage = repository.NewMemoryConfigStorage()
	}
	log.Info("Settings backend selected", zap.String("backend", cfg.Digest.SettingsBackend))
	a.settings = settings.NewFactory(storage)

	a.form = service.NewStagedContentForm(service.StagedContentFormOptions{
		Staging:  a.staging,
		Settings: a.settings,
		Links:    form.NewPathLinkBuilder(cfg.Digest.SiteBaseURL),
		Status:   cfg.Digest.Status,
		Action:   httpapi.DigestAdminPath,
		Logger:   log,
	})
	return a, nil
}

func (a *app) close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	_ = database.Close(a.db)
	_ = a.logger.Sync()
}
