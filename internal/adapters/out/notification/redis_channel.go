package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pricing/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const DefaultRedisChannel = "price-updates"

var _ ports.NotificationChannel = (*RedisChannel)(nil)

// Message is the JSON document published to subscribers.
type Message struct {
	Subject string    `json:"subject"`
	Message string    `json:"message"`
	SentAt  time.Time `json:"sent_at"`
}

type RedisChannel struct {
	client  redis.UniversalClient
	channel string
	now     func() time.Time
}

func NewRedisChannel(client redis.UniversalClient, channel string) *RedisChannel {
	if channel == "" {
		channel = DefaultRedisChannel
	}
	return &RedisChannel{client: client, channel: channel, now: time.Now}
}

func (c *RedisChannel) Send(ctx context.Context, subject, message string) error {
	raw, err := json.Marshal(Message{Subject: subject, Message: message, SentAt: c.now().UTC()})
	if err != nil {
		return err
	}
	if err := c.client.Publish(ctx, c.channel, raw).Err(); err != nil {
		return fmt.Errorf("redis publish %s: %w", c.channel, err)
	}
	return nil
}
