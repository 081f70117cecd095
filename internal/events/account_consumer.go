package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

type Handler func(ctx context.Context, event *AccountEvent) error

type ConsumerConfig struct {
	StreamName string
	Group      string
	Consumer   string
	BatchSize  int64
	Block      time.Duration
}

type AccountConsumer struct {
	client *redis.Client
	cfg    ConsumerConfig
}

func NewAccountConsumer(client *redis.Client, cfg ConsumerConfig) *AccountConsumer {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.Block <= 0 {
		cfg.Block = 5 * time.Second
	}
	return &AccountConsumer{client: client, cfg: cfg}
}

// EnsureGroup creates the consumer group, and the stream if needed.
func (c *AccountConsumer) EnsureGroup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.cfg.StreamName, c.cfg.Group, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}
	return nil
}

// Poll reads one batch and runs handle on each event. Entries that handle
// accepts, and malformed entries, are acknowledged; failed ones stay pending.
func (c *AccountConsumer) Poll(ctx context.Context, handle Handler) (int, error) {
	streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    c.cfg.Group,
		Consumer: c.cfg.Consumer,
		Streams:  []string{c.cfg.StreamName, ">"},
		Count:    c.cfg.BatchSize,
		Block:    c.cfg.Block,
	}).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read from stream: %w", err)
	}

	processed := 0
	var ackIDs []string
	for _, stream := range streams {
		for _, msg := range stream.Messages {
			event, ok := parseAccountEvent(msg.Values)
			if !ok {
				ackIDs = append(ackIDs, msg.ID)
				continue
			}
			if err := handle(ctx, event); err != nil {
				continue
			}
			processed++
			ackIDs = append(ackIDs, msg.ID)
		}
	}

	if len(ackIDs) > 0 {
		if err := c.client.XAck(ctx, c.cfg.StreamName, c.cfg.Group, ackIDs...).Err(); err != nil {
			return processed, fmt.Errorf("failed to acknowledge messages: %w", err)
		}
	}

	return processed, nil
}
