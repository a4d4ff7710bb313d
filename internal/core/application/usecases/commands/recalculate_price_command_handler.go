package commands

import (
	"context"
	"errors"
	"log/slog"

	"pricing/internal/core/domain/events"
	"pricing/internal/core/domain/model/pricing"
	"pricing/internal/core/domain/services"
	"pricing/internal/core/ports"
	"pricing/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const (
	priceCreatedMessage = "Pricing created"
	priceUpdatedMessage = "Price updated"
)

// RecalculatePriceResult reports the price written by the pricing stage.
type RecalculatePriceResult struct {
	Result
	NewPrice decimal.Decimal
	Created  bool
	Emitted  bool
}

// RecalculatePriceCommandHandler is the pricing stage. A product priced for the first time
// gets the default base price and factor; afterwards its stored parameters are reused.
//
// With emitOnCreate disabled the first pricing is written silently and only later
// recalculations emit PriceChanged.
type RecalculatePriceCommandHandler struct {
	uowFactory   PricingUoWFactory
	publisher    ports.EventPublisher
	engine       services.PricingEngine
	emitOnCreate bool
	logger       *slog.Logger
}

// NewRecalculatePriceCommandHandler creates the pricing stage handler.
func NewRecalculatePriceCommandHandler(
	uowFactory PricingUoWFactory,
	publisher ports.EventPublisher,
	emitOnCreate bool,
	logger *slog.Logger,
) RecalculatePriceCommandHandler {
	return RecalculatePriceCommandHandler{
		uowFactory:   uowFactory,
		publisher:    publisher,
		engine:       services.NewPricingEngine(),
		emitOnCreate: emitOnCreate,
		logger:       logger.With("component", "price_recalculator"),
	}
}

// Handle reprices the product from its stored demand. Handling the same command twice
// writes and emits the same price.
func (h RecalculatePriceCommandHandler) Handle(
	ctx context.Context,
	cmd RecalculatePriceCommand,
) (RecalculatePriceResult, error) {
	ctx, span := startSpan(ctx, "price_recalculator", cmd.ProductID())
	result, err := h.handle(ctx, cmd)
	endSpan(span, err)
	return result, err
}

func (h RecalculatePriceCommandHandler) handle(
	ctx context.Context,
	cmd RecalculatePriceCommand,
) (RecalculatePriceResult, error) {
	if err := cmd.Validate(); err != nil {
		return RecalculatePriceResult{Result: errorResult(err)}, err
	}

	record, created, err := h.reprice(ctx, cmd)
	if err != nil {
		return RecalculatePriceResult{Result: errorResult(err)}, err
	}

	result := RecalculatePriceResult{
		NewPrice: record.CurrentPrice(),
		Created:  created,
	}
	if created {
		result.Result = successResult(priceCreatedMessage)
	} else {
		result.Result = successResult(priceUpdatedMessage)
	}

	if created && !h.emitOnCreate {
		h.logger.InfoContext(ctx, "Pricing created without notification",
			"product_id", cmd.ProductID(), "price", result.NewPrice.String())
		return result, nil
	}

	envelope, err := events.NewEnvelope(events.SourcePricingService, events.TypePriceChanged,
		events.NewPriceChanged(cmd.ProductID(), result.NewPrice))
	if err == nil {
		err = h.publisher.Publish(ctx, envelope)
	}
	if err != nil {
		err = errs.NewDownstreamDispatchError("publish PriceChanged", err)
		h.logger.ErrorContext(ctx, "Price stored but PriceChanged was not emitted",
			"product_id", cmd.ProductID(), "price", result.NewPrice.String(), "error", err)
		result.Result = errorResult(err)
		return result, err
	}

	result.Emitted = true
	h.logger.InfoContext(ctx, "Price changed", "product_id", cmd.ProductID(), "price", result.NewPrice.String())
	return result, nil
}

func (h RecalculatePriceCommandHandler) reprice(
	ctx context.Context,
	cmd RecalculatePriceCommand,
) (*pricing.Record, bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	demandRecord, err := uow.DemandRepository().Get(ctx, cmd.ProductID())
	if err != nil {
		return nil, false, err
	}

	pricingRepo := uow.PricingRepository()
	record, err := pricingRepo.Get(ctx, cmd.ProductID())
	created := errors.Is(err, errs.ErrObjectNotFound)

	switch {
	case created:
		record, err = h.engine.NewPricing(cmd.ProductID(), demandRecord.Demand())
		if err != nil {
			return nil, false, err
		}
		err = pricingRepo.Add(ctx, record)
	case err != nil:
		return nil, false, err
	default:
		if _, err = h.engine.Reprice(record, demandRecord.Demand()); err != nil {
			return nil, false, err
		}
		err = pricingRepo.Update(ctx, record)
	}
	if err != nil {
		return nil, false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, false, err
	}

	return record, created, nil
}
