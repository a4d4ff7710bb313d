// Package redisstream carries envelopes over a single Redis Stream.
//
// Every stage reads through its own consumer group named "<group prefix>.<stage>", so each
// stage sees every envelope once and acknowledges it independently. An entry is XACKed when
// the handler outcome is terminal. A retryable failure leaves the entry in the pending list,
// where Redeliver picks it up once it has been idle long enough.
package redisstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"pricing/internal/core/domain/events"
	"pricing/internal/core/ports"
	"pricing/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const envelopeField = "envelope"

var (
	_ ports.EventPublisher  = (*Bus)(nil)
	_ ports.EventSubscriber = (*Bus)(nil)
)

type Config struct {
	Stream         string
	GroupPrefix    string
	Consumer       string
	Workers        int
	MaxDeliveries  int64
	RedeliveryIdle time.Duration
	BatchSize      int64
	Block          time.Duration
}

func (c Config) withDefaults() Config {
	if c.Stream == "" {
		c.Stream = "pricing-events"
	}
	if c.GroupPrefix == "" {
		c.GroupPrefix = "pricing"
	}
	if c.Consumer == "" {
		host, _ := os.Hostname()
		c.Consumer = fmt.Sprintf("%s-%d", host, os.Getpid())
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	if c.MaxDeliveries <= 0 {
		c.MaxDeliveries = 5
	}
	if c.RedeliveryIdle <= 0 {
		c.RedeliveryIdle = 30 * time.Second
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 16
	}
	if c.Block <= 0 {
		c.Block = 2 * time.Second
	}
	return c
}

type Bus struct {
	client redis.UniversalClient
	cfg    Config
	logger *slog.Logger

	mu sync.RWMutex
	// stage -> route key -> handler
	routes map[string]map[string]ports.EventHandler
}

func NewBus(client redis.UniversalClient, cfg Config, logger *slog.Logger) *Bus {
	return &Bus{
		client: client,
		cfg:    cfg.withDefaults(),
		logger: logger.With("component", "redis_event_bus"),
		routes: make(map[string]map[string]ports.EventHandler),
	}
}

func (b *Bus) Stream() string {
	return b.cfg.Stream
}

// Group returns the consumer group name of a stage.
func (b *Bus) Group(stage string) string {
	return b.cfg.GroupPrefix + "." + stage
}

func (b *Bus) Publish(ctx context.Context, envelope events.Envelope) error {
	raw, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	err = b.client.XAdd(ctx, &redis.XAddArgs{
		Stream: b.cfg.Stream,
		Values: map[string]any{envelopeField: raw},
	}).Err()
	if err != nil {
		return fmt.Errorf("xadd %s: %w", b.cfg.Stream, err)
	}
	return nil
}

func (b *Bus) Subscribe(stage, source, detailType string, handler ports.EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.routes[stage] == nil {
		b.routes[stage] = make(map[string]ports.EventHandler)
	}
	b.routes[stage][events.RouteKey(source, detailType)] = handler
}

// EnsureGroups creates the consumer group of every subscribed stage.
// Groups start at the beginning of the stream so entries published before the first start are not lost.
func (b *Bus) EnsureGroups(ctx context.Context) error {
	for _, stage := range b.stages() {
		err := b.client.XGroupCreateMkStream(ctx, b.cfg.Stream, b.Group(stage), "0").Err()
		if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
			return fmt.Errorf("create group %s: %w", b.Group(stage), err)
		}
	}
	return nil
}

// Run reads new entries for every stage until ctx is cancelled.
func (b *Bus) Run(ctx context.Context) error {
	if err := b.EnsureGroups(ctx); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, stage := range b.stages() {
		for i := 0; i < b.cfg.Workers; i++ {
			consumer := fmt.Sprintf("%s-%s-%d", b.cfg.Consumer, stage, i)
			g.Go(func() error {
				return b.consume(ctx, stage, consumer)
			})
		}
	}
	return g.Wait()
}

func (b *Bus) consume(ctx context.Context, stage, consumer string) error {
	group := b.Group(stage)
	for {
		streams, err := b.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    group,
			Consumer: consumer,
			Streams:  []string{b.cfg.Stream, ">"},
			Count:    b.cfg.BatchSize,
			Block:    b.cfg.Block,
		}).Result()
		if ctx.Err() != nil {
			return nil
		}
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			b.logger.ErrorContext(ctx, "xreadgroup failed", "group", group, "error", err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(time.Second):
			}
			continue
		}

		for _, stream := range streams {
			for _, msg := range stream.Messages {
				b.dispatch(ctx, stage, msg)
			}
		}
	}
}

// Redeliver claims entries that stayed pending longer than the idle threshold and hands them
// to their stage again. Entries already delivered MaxDeliveries times are acknowledged and dropped.
// It returns the number of entries re-dispatched.
func (b *Bus) Redeliver(ctx context.Context) (int, error) {
	redelivered := 0
	for _, stage := range b.stages() {
		group := b.Group(stage)
		pending, err := b.client.XPendingExt(ctx, &redis.XPendingExtArgs{
			Stream: b.cfg.Stream,
			Group:  group,
			Idle:   b.cfg.RedeliveryIdle,
			Start:  "-",
			End:    "+",
			Count:  b.cfg.BatchSize,
		}).Result()
		if err != nil {
			return redelivered, fmt.Errorf("xpending %s: %w", group, err)
		}

		var retry []string
		for _, entry := range pending {
			if entry.RetryCount >= b.cfg.MaxDeliveries {
				b.logger.ErrorContext(ctx, "event dropped after delivery budget",
					"group", group, "entry_id", entry.ID, "deliveries", entry.RetryCount)
				if err := b.ack(ctx, group, entry.ID); err != nil {
					return redelivered, err
				}
				continue
			}
			retry = append(retry, entry.ID)
		}
		if len(retry) == 0 {
			continue
		}

		claimed, err := b.client.XClaim(ctx, &redis.XClaimArgs{
			Stream:   b.cfg.Stream,
			Group:    group,
			Consumer: b.cfg.Consumer + "-redelivery",
			MinIdle:  b.cfg.RedeliveryIdle,
			Messages: retry,
		}).Result()
		if err != nil {
			return redelivered, fmt.Errorf("xclaim %s: %w", group, err)
		}
		for _, msg := range claimed {
			b.dispatch(ctx, stage, msg)
			redelivered++
		}
	}
	return redelivered, nil
}

func (b *Bus) dispatch(ctx context.Context, stage string, msg redis.XMessage) {
	group := b.Group(stage)
	log := b.logger.With("group", group, "entry_id", msg.ID)

	envelope, err := decodeEnvelope(msg)
	if err != nil {
		log.WarnContext(ctx, "undecodable entry acknowledged", "error", err)
		_ = b.ack(ctx, group, msg.ID)
		return
	}

	handler, ok := b.handler(stage, envelope.Key())
	if !ok {
		_ = b.ack(ctx, group, msg.ID)
		return
	}

	err = handler(ctx, envelope)
	if err != nil && errs.IsRetryable(err) {
		log.InfoContext(ctx, "event left pending for redelivery",
			"event_id", envelope.ID, "detail_type", envelope.DetailType, "error", err)
		return
	}
	if err != nil {
		log.WarnContext(ctx, "event rejected",
			"event_id", envelope.ID, "detail_type", envelope.DetailType, "error", err)
	}
	if err := b.ack(ctx, group, msg.ID); err != nil {
		log.ErrorContext(ctx, "xack failed", "error", err)
	}
}

func (b *Bus) ack(ctx context.Context, group, id string) error {
	if err := b.client.XAck(ctx, b.cfg.Stream, group, id).Err(); err != nil {
		return fmt.Errorf("xack %s %s: %w", group, id, err)
	}
	return nil
}

func (b *Bus) handler(stage, key string) (ports.EventHandler, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	h, ok := b.routes[stage][key]
	return h, ok
}

func (b *Bus) stages() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	stages := make([]string, 0, len(b.routes))
	for stage := range b.routes {
		stages = append(stages, stage)
	}
	return stages
}

func decodeEnvelope(msg redis.XMessage) (events.Envelope, error) {
	var raw []byte
	switch v := msg.Values[envelopeField].(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return events.Envelope{}, errs.NewValueIsRequiredError(envelopeField)
	}

	var envelope events.Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return events.Envelope{}, errs.NewValueIsInvalidErrorWithCause(envelopeField, err)
	}
	return envelope, nil
}
