package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/honeycarbs/recruit-ops/internal/domain/job"
)

// DefaultChannel carries every catalog event
const DefaultChannel = "recruitops.events"

var _ job.Publisher = (*RedisPublisher)(nil)

// publisher is the subset of *redis.Client used here
type publisher interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// RedisPublisher sends catalog events as JSON over Redis pub/sub
type RedisPublisher struct {
	rdb     publisher
	channel string
}

// NewRedisPublisher publishes on channel, or DefaultChannel when empty
func NewRedisPublisher(rdb publisher, channel string) *RedisPublisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisPublisher{rdb: rdb, channel: channel}
}

// Publish encodes evt and sends it to the configured channel
func (p *RedisPublisher) Publish(ctx context.Context, evt job.Event) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("encode %s: %w", evt.Type, err)
	}
	if err := p.rdb.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", evt.Type, err)
	}
	return nil
}
