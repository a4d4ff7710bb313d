package ports

import (
	"context"

	"pricing/internal/core/domain/events"
)

// EventPublisher puts an envelope on the event bus.
// A nil error means the bus accepted the event; delivery is at-least-once.
type EventPublisher interface {
	Publish(ctx context.Context, envelope events.Envelope) error
}

// EventHandler processes one delivered envelope. A retryable error (see errs.IsRetryable)
// leaves the envelope for redelivery; any other outcome acknowledges it.
type EventHandler func(ctx context.Context, envelope events.Envelope) error

// EventSubscriber routes envelopes matching (source, detailType) to a handler.
type EventSubscriber interface {
	// Subscribe registers handler for a stage. It must be called before Run.
	Subscribe(stage, source, detailType string, handler EventHandler)

	// Run consumes until ctx is cancelled.
	Run(ctx context.Context) error
}
