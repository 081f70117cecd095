package events

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type AccountProducer struct {
	client     *redis.Client
	streamName string
}

// NewAccountProducer returns a producer on streamName. A nil client makes
// Publish a no-op.
func NewAccountProducer(client *redis.Client, streamName string) *AccountProducer {
	return &AccountProducer{
		client:     client,
		streamName: streamName,
	}
}

func (p *AccountProducer) Publish(ctx context.Context, event *AccountEvent) error {
	if p == nil || p.client == nil {
		return nil
	}

	result := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.streamName,
		MaxLen: 100000,
		Approx: true,
		Values: event.fields(),
	})

	if err := result.Err(); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}

	return nil
}

func (p *AccountProducer) StreamLength(ctx context.Context) (int64, error) {
	if p == nil || p.client == nil {
		return 0, nil
	}
	result := p.client.XLen(ctx, p.streamName)
	return result.Val(), result.Err()
}
