package commands

import (
	"context"
	"log/slog"
	"time"

	"pricing/internal/core/domain/events"
	"pricing/internal/core/domain/model/kernel"
	"pricing/internal/core/domain/model/order"
	"pricing/internal/core/ports"
	"pricing/internal/pkg/errs"
)

const orderPlacedMessage = "Order placed"

// PlaceOrderResult carries the generated order id. OrderID is set whenever the order
// was persisted, even if emitting OrderPlaced failed afterwards.
type PlaceOrderResult struct {
	Result
	OrderID kernel.UUID
}

// PlaceOrderCommandHandler is the intake stage: it persists the order and emits OrderPlaced.
//
// Example:
//
//	handler := NewPlaceOrderCommandHandler(uowFactory, publisher, logger)
//	cmd, _ := NewPlaceOrderCommand("sku-1", 5)
//
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    // result.StatusCode is 500 and result.OrderID may still be set
//	}
type PlaceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	now        func() time.Time
	logger     *slog.Logger
}

// NewPlaceOrderCommandHandler creates the intake handler.
func NewPlaceOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		now:        time.Now,
		logger:     logger.With("component", "order_intake"),
	}
}

// Handle generates the order id and timestamp, stores the order, commits and then
// publishes OrderPlaced. A failed publish yields a DownstreamDispatchError; the order stays stored.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (PlaceOrderResult, error) {
	ctx, span := startSpan(ctx, "order_intake", cmd.ProductID())
	result, err := h.handle(ctx, cmd)
	endSpan(span, err)
	return result, err
}

func (h PlaceOrderCommandHandler) handle(ctx context.Context, cmd PlaceOrderCommand) (PlaceOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return PlaceOrderResult{Result: errorResult(err)}, err
	}

	o, err := order.NewOrder(kernel.NewUUID(), cmd.ProductID(), cmd.Quantity(), h.now())
	if err != nil {
		return PlaceOrderResult{Result: errorResult(err)}, err
	}

	if err = h.persist(ctx, o); err != nil {
		return PlaceOrderResult{Result: errorResult(err)}, err
	}

	envelope, err := events.NewEnvelope(events.SourceOrderService, events.TypeOrderPlaced,
		events.NewOrderPlaced(o.ID().String(), o.ProductID(), o.Quantity(), o.Timestamp()))
	if err == nil {
		err = h.publisher.Publish(ctx, envelope)
	}
	if err != nil {
		err = errs.NewDownstreamDispatchError("publish OrderPlaced", err)
		h.logger.ErrorContext(ctx, "Order stored but OrderPlaced was not emitted",
			"order_id", o.ID().String(), "product_id", o.ProductID(), "error", err)
		return PlaceOrderResult{Result: errorResult(err), OrderID: o.ID()}, err
	}

	h.logger.InfoContext(ctx, "Order placed",
		"order_id", o.ID().String(), "product_id", o.ProductID(), "quantity", o.Quantity())
	return PlaceOrderResult{Result: successResult(orderPlacedMessage), OrderID: o.ID()}, nil
}

func (h PlaceOrderCommandHandler) persist(ctx context.Context, o *order.Order) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
