package commands_test

import (
	"errors"
	"log/slog"
	"net/http"
	"testing"

	"pricing/internal/core/application/usecases/commands"
	"pricing/internal/core/domain/events"
	"pricing/internal/core/domain/model/order"
	"pricing/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var discardLogger = slog.New(slog.DiscardHandler)

func TestPlaceOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewPlaceOrderCommand("sku-1", 5)

	var stored *order.Order
	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	publisher := new(MockPublisher)
	mock.InOrder(
		uow.On("Begin", mock.Anything).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).
			Run(func(args mock.Arguments) { stored = args.Get(1).(*order.Order) }).
			Return(nil).Once(),
		uow.On("Commit", mock.Anything).Return(nil).Once(),
		uow.On("Rollback", mock.Anything).Return(nil).Once(),
		publisher.On("Publish", mock.Anything, envelopeOf(events.SourceOrderService, events.TypeOrderPlaced)).
			Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(factory, publisher, discardLogger)
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, "Order placed", result.Message)
	require.NotNil(t, stored)
	assert.Equal(t, stored.ID(), result.OrderID)
	assert.Equal(t, "sku-1", stored.ProductID())
	assert.Equal(t, 5, stored.Quantity())
	assert.Positive(t, stored.Timestamp())

	published := publisher.Calls[0].Arguments.Get(1).(events.Envelope)
	var payload events.OrderPlaced
	require.NoError(t, published.Decode(&payload))
	assert.Equal(t, stored.ID().String(), *payload.OrderID)
	assert.Equal(t, "sku-1", *payload.ProductID)
	assert.Equal(t, 5, *payload.Quantity)
	assert.Equal(t, stored.Timestamp(), *payload.Timestamp)

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_UniqueOrderIDs(t *testing.T) {
	repo := new(MockOrderRepository)
	repo.On("Add", mock.Anything, mock.Anything).Return(nil)
	uow := new(MockUoW)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("OrderRepository").Return(repo)
	uow.On("Commit", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)
	publisher := new(MockPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	h := commands.NewPlaceOrderCommandHandler(factory, publisher, discardLogger)
	seen := make(map[string]struct{})
	for range 10 {
		cmd, _ := commands.NewPlaceOrderCommand("sku-1", 1)
		result, err := h.Handle(t.Context(), cmd)
		require.NoError(t, err)
		seen[result.OrderID.String()] = struct{}{}
	}

	assert.Len(t, seen, 10)
}

func TestPlaceOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockOrderUoWFactory)
	publisher := new(MockPublisher)
	h := commands.NewPlaceOrderCommandHandler(factory, publisher, discardLogger)

	_, err := h.Handle(t.Context(), commands.PlaceOrderCommand{})

	require.Error(t, err)
	factory.AssertNotCalled(t, "Create")
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestPlaceOrderCommandHandler_Handle_AddError(t *testing.T) {
	cmd, _ := commands.NewPlaceOrderCommand("sku-1", 5)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", mock.Anything).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.Anything).Return(errors.New("add error")).Once(),
		uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	publisher := new(MockPublisher)

	h := commands.NewPlaceOrderCommandHandler(factory, publisher, discardLogger)
	result, err := h.Handle(t.Context(), cmd)

	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, result.StatusCode)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_CommitError(t *testing.T) {
	cmd, _ := commands.NewPlaceOrderCommand("sku-1", 5)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", mock.Anything).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.Anything).Return(nil).Once(),
		uow.On("Commit", mock.Anything).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	publisher := new(MockPublisher)

	h := commands.NewPlaceOrderCommandHandler(factory, publisher, discardLogger)
	_, err := h.Handle(t.Context(), cmd)

	require.Error(t, err)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_PublishError(t *testing.T) {
	cmd, _ := commands.NewPlaceOrderCommand("sku-1", 5)

	repo := new(MockOrderRepository)
	repo.On("Add", mock.Anything, mock.Anything).Return(nil).Once()
	uow := new(MockUoW)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Commit", mock.Anything).Return(nil).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	publisher := new(MockPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("bus down")).Once()

	h := commands.NewPlaceOrderCommandHandler(factory, publisher, discardLogger)
	result, err := h.Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrDownstreamDispatch)
	assert.True(t, errs.IsRetryable(err))
	assert.Equal(t, http.StatusInternalServerError, result.StatusCode)
	assert.NoError(t, result.OrderID.Validate(), "order id is returned even though the event was lost")
	uow.AssertExpectations(t)
}
