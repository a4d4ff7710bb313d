// Package memory is an in-process event bus for single-node runs and tests.
//
// Published envelopes land in an unbounded backlog. A broker goroutine moves them into a
// buffered channel that a fixed number of workers drain. A handler failure that
// errs.IsRetryable accepts is put back into the backlog until the delivery budget is spent.
package memory

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"pricing/internal/core/domain/events"
	"pricing/internal/core/ports"
	"pricing/internal/pkg/errs"
)

var ErrBusIsClosed = errors.New("event bus does not accept new events")

const (
	DefaultWorkers       = 4
	DefaultMaxDeliveries = 5
	defaultOutBuffer     = 64
	brokerTick           = 50 * time.Millisecond
)

var (
	_ ports.EventPublisher  = (*Bus)(nil)
	_ ports.EventSubscriber = (*Bus)(nil)
)

type subscription struct {
	stage   string
	handler ports.EventHandler
}

type delivery struct {
	sub      subscription
	envelope events.Envelope
	attempt  int
}

type Bus struct {
	mu            sync.Mutex
	subscriptions map[string][]subscription
	backlog       []delivery
	notify        chan struct{}
	out           chan delivery
	closed        atomic.Bool

	// pending counts deliveries that are queued or being handled.
	pending atomic.Int64

	workers       int
	maxDeliveries int
	logger        *slog.Logger
}

func NewBus(workers, maxDeliveries int, logger *slog.Logger) *Bus {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if maxDeliveries <= 0 {
		maxDeliveries = DefaultMaxDeliveries
	}
	return &Bus{
		subscriptions: make(map[string][]subscription),
		notify:        make(chan struct{}, 1),
		out:           make(chan delivery, defaultOutBuffer),
		workers:       workers,
		maxDeliveries: maxDeliveries,
		logger:        logger.With("component", "memory_event_bus"),
	}
}

func (b *Bus) Subscribe(stage, source, detailType string, handler ports.EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	key := events.RouteKey(source, detailType)
	b.subscriptions[key] = append(b.subscriptions[key], subscription{stage: stage, handler: handler})
}

// Publish fans the envelope out to every stage subscribed to its route key.
// Envelopes nobody subscribed to are accepted and discarded.
func (b *Bus) Publish(_ context.Context, envelope events.Envelope) error {
	if b.closed.Load() {
		return ErrBusIsClosed
	}

	b.mu.Lock()
	subs := b.subscriptions[envelope.Key()]
	for _, sub := range subs {
		b.pending.Add(1)
		b.backlog = append(b.backlog, delivery{sub: sub, envelope: envelope, attempt: 1})
	}
	b.mu.Unlock()

	b.wake()
	return nil
}

// Run starts the broker and the workers and blocks until ctx is cancelled.
// Intake is closed on return; undelivered backlog is dropped.
func (b *Bus) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		b.broker(ctx)
	}()

	for i := 0; i < b.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.work(ctx)
		}()
	}

	<-ctx.Done()
	b.closed.Store(true)
	wg.Wait()
	return nil
}

// WaitIdle blocks until every published envelope has reached a terminal outcome.
func (b *Bus) WaitIdle(ctx context.Context) error {
	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()
	for {
		if b.pending.Load() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (b *Bus) broker(ctx context.Context) {
	ticker := time.NewTicker(brokerTick)
	defer ticker.Stop()
	for {
		b.flushOnce(ctx)
		select {
		case <-ctx.Done():
			return
		case <-b.notify:
		case <-ticker.C:
		}
	}
}

func (b *Bus) flushOnce(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for len(b.backlog) > 0 && len(b.out) < cap(b.out) {
		if ctx.Err() != nil {
			return
		}
		b.out <- b.backlog[0]
		b.backlog = b.backlog[1:]
	}
}

func (b *Bus) work(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case d := <-b.out:
			b.handle(ctx, d)
		}
	}
}

func (b *Bus) handle(ctx context.Context, d delivery) {
	defer b.pending.Add(-1)

	err := d.sub.handler(ctx, d.envelope)
	if err == nil {
		return
	}

	log := b.logger.With(
		"stage", d.sub.stage,
		"event_id", d.envelope.ID,
		"detail_type", d.envelope.DetailType,
		"attempt", d.attempt,
	)

	if !errs.IsRetryable(err) {
		log.WarnContext(ctx, "event rejected", "error", err)
		return
	}
	if d.attempt >= b.maxDeliveries || b.closed.Load() {
		log.ErrorContext(ctx, "event dropped after delivery budget", "error", err)
		return
	}

	log.InfoContext(ctx, "event requeued", "error", err)
	d.attempt++
	b.pending.Add(1)
	b.mu.Lock()
	b.backlog = append(b.backlog, d)
	b.mu.Unlock()
	b.wake()
}

func (b *Bus) wake() {
	select {
	case b.notify <- struct{}{}:
	default:
	}
}
