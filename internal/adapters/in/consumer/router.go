// Package consumer turns bus envelopes into stage commands.
//
// Each stage subscribes to exactly one (source, detail_type) pair. The returned error decides
// what the bus does with the envelope: nil and terminal errors acknowledge it, retryable errors
// (errs.IsRetryable) leave it for redelivery.
package consumer

import (
	"context"
	"log/slog"

	"pricing/internal/core/application/usecases/commands"
	"pricing/internal/core/domain/events"
	"pricing/internal/core/ports"
	"pricing/internal/pkg/errs"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	StageDemandAccumulator = "demand-accumulator"
	StagePriceRecalculator = "price-recalculator"
	StageNotifier          = "notifier"
)

var tracer = otel.Tracer("pricing/consumer")

type DemandAccumulator interface {
	Handle(ctx context.Context, cmd commands.AccumulateDemandCommand) (commands.AccumulateDemandResult, error)
}

type PriceRecalculator interface {
	Handle(ctx context.Context, cmd commands.RecalculatePriceCommand) (commands.RecalculatePriceResult, error)
}

type PriceChangeNotifier interface {
	Handle(ctx context.Context, cmd commands.NotifyPriceChangeCommand) (commands.Result, error)
}

type Router struct {
	accumulator  DemandAccumulator
	recalculator PriceRecalculator
	notifier     PriceChangeNotifier
	logger       *slog.Logger
}

func NewRouter(
	accumulator DemandAccumulator,
	recalculator PriceRecalculator,
	notifier PriceChangeNotifier,
	logger *slog.Logger,
) *Router {
	return &Router{
		accumulator:  accumulator,
		recalculator: recalculator,
		notifier:     notifier,
		logger:       logger.With("component", "consumer_router"),
	}
}

// Register subscribes every stage to its triggering event.
func (r *Router) Register(subscriber ports.EventSubscriber) {
	subscriber.Subscribe(StageDemandAccumulator, events.SourceOrderService, events.TypeOrderPlaced, r.OnOrderPlaced)
	subscriber.Subscribe(StagePriceRecalculator, events.SourceDemandAnalysis, events.TypeHighDemand, r.OnHighDemandDetected)
	subscriber.Subscribe(StageNotifier, events.SourcePricingService, events.TypePriceChanged, r.OnPriceChanged)
}

func (r *Router) OnOrderPlaced(ctx context.Context, envelope events.Envelope) (err error) {
	ctx, span := startSpan(ctx, StageDemandAccumulator, envelope)
	defer func() { endSpan(span, err) }()

	var payload events.OrderPlaced
	if err := envelope.Decode(&payload); err != nil {
		return r.reject(ctx, StageDemandAccumulator, envelope, err)
	}

	cmd, err := commands.NewAccumulateDemandCommand(
		deref(payload.OrderID), deref(payload.ProductID), deref(payload.Quantity))
	if err != nil {
		return r.reject(ctx, StageDemandAccumulator, envelope, err)
	}

	result, err := r.accumulator.Handle(ctx, cmd)
	r.report(ctx, StageDemandAccumulator, envelope, result.Result, err)
	return err
}

func (r *Router) OnHighDemandDetected(ctx context.Context, envelope events.Envelope) (err error) {
	ctx, span := startSpan(ctx, StagePriceRecalculator, envelope)
	defer func() { endSpan(span, err) }()

	var payload events.HighDemandDetected
	if err := envelope.Decode(&payload); err != nil {
		return r.reject(ctx, StagePriceRecalculator, envelope, err)
	}

	cmd, err := commands.NewRecalculatePriceCommand(deref(payload.ProductID))
	if err != nil {
		return r.reject(ctx, StagePriceRecalculator, envelope, err)
	}

	result, err := r.recalculator.Handle(ctx, cmd)
	r.report(ctx, StagePriceRecalculator, envelope, result.Result, err)
	return err
}

func (r *Router) OnPriceChanged(ctx context.Context, envelope events.Envelope) (err error) {
	ctx, span := startSpan(ctx, StageNotifier, envelope)
	defer func() { endSpan(span, err) }()

	var payload events.PriceChanged
	if err := envelope.Decode(&payload); err != nil {
		return r.reject(ctx, StageNotifier, envelope, err)
	}

	newPrice := ""
	if payload.NewPrice != nil {
		newPrice = payload.NewPrice.String()
	}

	cmd, err := commands.NewNotifyPriceChangeCommand(deref(payload.ProductID), newPrice)
	if err != nil {
		return r.reject(ctx, StageNotifier, envelope, err)
	}

	result, err := r.notifier.Handle(ctx, cmd)
	r.report(ctx, StageNotifier, envelope, result, err)
	return err
}

func (r *Router) reject(ctx context.Context, stage string, envelope events.Envelope, err error) error {
	r.logger.WarnContext(ctx, "event rejected",
		"stage", stage,
		"event_id", envelope.ID,
		"status_code", errs.StatusCode(err),
		"error", err,
	)
	return err
}

func (r *Router) report(ctx context.Context, stage string, envelope events.Envelope, result commands.Result, err error) {
	log := r.logger.With("stage", stage, "event_id", envelope.ID, "status_code", result.StatusCode)
	if err != nil {
		log.WarnContext(ctx, "stage failed", "retryable", errs.IsRetryable(err), "error", err)
		return
	}
	log.DebugContext(ctx, "stage completed", "message", result.Message)
}

func startSpan(ctx context.Context, stage string, envelope events.Envelope) (context.Context, trace.Span) {
	return tracer.Start(ctx, "consume "+stage, trace.WithAttributes(
		attribute.String("event.id", envelope.ID),
		attribute.String("event.source", envelope.Source),
		attribute.String("event.detail_type", envelope.DetailType),
	))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}
