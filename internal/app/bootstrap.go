// Package app holds the startup wiring shared by the api server and the
// cleanup worker.
package app

import (
	"context"
	"fmt"

	"github.com/Varun5711/devconnect/internal/config"
	"github.com/Varun5711/devconnect/internal/database"
	"github.com/Varun5711/devconnect/internal/logger"
	"github.com/Varun5711/devconnect/internal/redis"
	"github.com/Varun5711/devconnect/internal/storage"
)

// OpenStore connects the configured store, applying migrations first when
// enabled. The returned close func is never nil.
func OpenStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (storage.Store, func(), error) {
	if cfg.Server.StoreDriver == "memory" {
		log.Warn("Using in-memory store, data is lost on restart")
		return storage.NewMemoryStorage(), func() {}, nil
	}

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, cfg.Database.PrimaryDSN); err != nil {
			return nil, func() {}, fmt.Errorf("failed to migrate database: %w", err)
		}
		log.Info("Database migrations applied")
	}

	dbManager, err := database.NewDBManager(ctx, database.Config{
		PrimaryDSN:      cfg.Database.PrimaryDSN,
		ReplicaDSNs:     cfg.Database.ReplicaDSNs,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
	})
	if err != nil {
		return nil, func() {}, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Info("Connected to Postgres (%d replicas)", len(cfg.Database.ReplicaDSNs))
	return storage.NewPostgresStorage(dbManager), dbManager.Close, nil
}

// ConnectRedis returns nil when Redis is disabled or unreachable. Every
// Redis-backed component treats a nil client as "run without it".
func ConnectRedis(ctx context.Context, cfg *config.Config, log *logger.Logger) *redis.RedisClient {
	if !cfg.Redis.Enabled {
		log.Info("Redis disabled")
		return nil
	}

	client, err := redis.NewRedisClient(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Continuing without Redis: %v", err)
		return nil
	}

	log.Info("Connected to Redis at %s", cfg.Redis.Addr)
	return client
}
