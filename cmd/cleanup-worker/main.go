package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/Varun5711/devconnect/internal/app"
	"github.com/Varun5711/devconnect/internal/cache"
	"github.com/Varun5711/devconnect/internal/config"
	"github.com/Varun5711/devconnect/internal/events"
	"github.com/Varun5711/devconnect/internal/lock"
	"github.com/Varun5711/devconnect/internal/logger"
	"github.com/Varun5711/devconnect/internal/worker"
)

func main() {
	log := logger.New("cleanup-worker")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := app.OpenStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("%v", err)
	}
	defer closeStore()

	redisClient := app.ConnectRedis(ctx, cfg, log)
	defer redisClient.Close()
	rdb := redisClient.GetClient()

	profileCache := cache.NewMultiTierCache(cfg.Cache.L1Capacity, rdb, cfg.Cache.L2TTL)
	sweepLocker := lock.NewLocker(rdb, "cleanup:", cfg.Cleanup.LockTTL)
	cleaner := worker.NewCleaner(store, profileCache, sweepLocker, log)

	var source worker.EventSource
	if rdb != nil {
		consumer := events.NewAccountConsumer(rdb, events.ConsumerConfig{
			StreamName: cfg.Redis.StreamName,
			Group:      cfg.Cleanup.ConsumerGroup,
			Consumer:   cfg.Cleanup.ConsumerName,
			Block:      cfg.Cleanup.BlockTime,
		})
		if err := consumer.EnsureGroup(ctx); err != nil {
			log.Fatal("Failed to create consumer group: %v", err)
		}
		source = consumer
	} else {
		log.Warn("Redis unavailable, running orphan sweeps only")
	}

	log.Info("Cleanup worker started. Sweeping every %v", cfg.Cleanup.SweepInterval)
	cleaner.Run(ctx, source, cfg.Cleanup.SweepInterval)
	log.Info("Cleanup worker stopped")
}
