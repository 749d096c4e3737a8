package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/srgjo27/carpool_booking/internal/core/domain"
)

// RedisPublisher fans booking events out over a Redis pub/sub channel.
// Delivery is fire-and-forget.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

func (p *RedisPublisher) Publish(ctx context.Context, event domain.BookingEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode booking event: %w", err)
	}

	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish booking event: %w", err)
	}
	return nil
}

// Nop drops every event. Used when Redis is disabled.
type Nop struct{}

func (Nop) Publish(context.Context, domain.BookingEvent) error { return nil }
