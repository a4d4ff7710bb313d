package commands

import (
	"context"
	"errors"
	"log/slog"

	"pricing/internal/core/domain/events"
	"pricing/internal/core/domain/model/demand"
	"pricing/internal/core/domain/services"
	"pricing/internal/core/ports"
	"pricing/internal/pkg/errs"
)

const demandUpdatedMessage = "Demand updated"

// AccumulateDemandResult reports the demand after the order was counted.
type AccumulateDemandResult struct {
	Result
	Demand     int
	HighDemand bool
	Duplicate  bool
}

// AccumulateDemandCommandHandler is the demand stage: it adds an order's quantity to the
// product's demand and emits HighDemandDetected at or above the threshold.
//
// Each order is counted once. Its contribution is recorded in the same transaction as the
// demand change, so a redelivered OrderPlaced re-emits with the current demand instead of
// adding the quantity again.
type AccumulateDemandCommandHandler struct {
	uowFactory DemandUoWFactory
	publisher  ports.EventPublisher
	engine     services.PricingEngine
	mode       AccumulationMode
	logger     *slog.Logger
}

// NewAccumulateDemandCommandHandler creates the demand stage handler.
func NewAccumulateDemandCommandHandler(
	uowFactory DemandUoWFactory,
	publisher ports.EventPublisher,
	mode AccumulationMode,
	logger *slog.Logger,
) AccumulateDemandCommandHandler {
	return AccumulateDemandCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		engine:     services.NewPricingEngine(),
		mode:       mode,
		logger:     logger.With("component", "demand_accumulator"),
	}
}

// Handle counts the order into demand. A missing order is reported as not found and
// leaves demand untouched.
func (h AccumulateDemandCommandHandler) Handle(
	ctx context.Context,
	cmd AccumulateDemandCommand,
) (AccumulateDemandResult, error) {
	ctx, span := startSpan(ctx, "demand_accumulator", cmd.ProductID())
	result, err := h.handle(ctx, cmd)
	endSpan(span, err)
	return result, err
}

func (h AccumulateDemandCommandHandler) handle(
	ctx context.Context,
	cmd AccumulateDemandCommand,
) (AccumulateDemandResult, error) {
	if err := cmd.Validate(); err != nil {
		return AccumulateDemandResult{Result: errorResult(err)}, err
	}

	newDemand, duplicate, err := h.accumulate(ctx, cmd)
	if err != nil {
		return AccumulateDemandResult{Result: errorResult(err)}, err
	}

	result := AccumulateDemandResult{
		Result:     successResult(demandUpdatedMessage),
		Demand:     newDemand,
		HighDemand: h.engine.IsHighDemand(newDemand),
		Duplicate:  duplicate,
	}

	if duplicate {
		h.logger.WarnContext(ctx, "Order already counted, demand left unchanged",
			"order_id", cmd.OrderID().String(), "product_id", cmd.ProductID(), "demand", newDemand)
	}

	if !result.HighDemand {
		return result, nil
	}

	envelope, err := events.NewEnvelope(events.SourceDemandAnalysis, events.TypeHighDemand,
		events.NewHighDemandDetected(cmd.ProductID(), newDemand))
	if err == nil {
		err = h.publisher.Publish(ctx, envelope)
	}
	if err != nil {
		err = errs.NewDownstreamDispatchError("publish HighDemandDetected", err)
		h.logger.ErrorContext(ctx, "Demand stored but HighDemandDetected was not emitted",
			"product_id", cmd.ProductID(), "demand", newDemand, "error", err)
		result.Result = errorResult(err)
		return result, err
	}

	h.logger.InfoContext(ctx, "High demand detected", "product_id", cmd.ProductID(), "demand", newDemand)
	return result, nil
}

func (h AccumulateDemandCommandHandler) accumulate(
	ctx context.Context,
	cmd AccumulateDemandCommand,
) (int, bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return 0, false, err
	}

	contribution, err := demand.NewContribution(o.ID(), cmd.ProductID(), cmd.Quantity())
	if err != nil {
		return 0, false, err
	}

	demandRepo := uow.DemandRepository()
	fresh, err := demandRepo.RecordContribution(ctx, contribution)
	if err != nil {
		return 0, false, err
	}

	var newDemand int
	switch {
	case !fresh:
		record, getErr := demandRepo.Get(ctx, cmd.ProductID())
		if getErr != nil {
			return 0, false, getErr
		}
		newDemand = record.Demand()
	case h.mode == Atomic:
		newDemand, err = demandRepo.Increment(ctx, cmd.ProductID(), cmd.Quantity())
	default:
		newDemand, err = h.readModifyWrite(ctx, demandRepo, cmd)
	}
	if err != nil {
		return 0, false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, false, err
	}

	return newDemand, !fresh, nil
}

func (h AccumulateDemandCommandHandler) readModifyWrite(
	ctx context.Context,
	repo ports.DemandRepository,
	cmd AccumulateDemandCommand,
) (int, error) {
	record, err := repo.Get(ctx, cmd.ProductID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		record, err = demand.NewRecord(cmd.ProductID(), cmd.Quantity())
		if err != nil {
			return 0, err
		}
		if err = repo.Add(ctx, record); err != nil {
			return 0, err
		}
		return record.Demand(), nil
	}
	if err != nil {
		return 0, err
	}

	newDemand, err := record.Add(cmd.Quantity())
	if err != nil {
		return 0, err
	}

	if err = repo.Update(ctx, record); err != nil {
		return 0, err
	}

	return newDemand, nil
}
