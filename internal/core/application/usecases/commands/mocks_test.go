package commands_test

import (
	"context"

	"pricing/internal/core/application/usecases/commands"
	"pricing/internal/core/domain/events"
	"pricing/internal/core/domain/model/demand"
	"pricing/internal/core/domain/model/kernel"
	"pricing/internal/core/domain/model/order"
	"pricing/internal/core/domain/model/pricing"
	"pricing/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockDemandRepository struct{ mock.Mock }

func (m *MockDemandRepository) Get(ctx context.Context, productID string) (*demand.Record, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*demand.Record), args.Error(1)
}

func (m *MockDemandRepository) Add(ctx context.Context, r *demand.Record) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockDemandRepository) Update(ctx context.Context, r *demand.Record) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockDemandRepository) Increment(ctx context.Context, productID string, quantity int) (int, error) {
	args := m.Called(ctx, productID, quantity)
	return args.Int(0), args.Error(1)
}

func (m *MockDemandRepository) RecordContribution(ctx context.Context, c demand.Contribution) (bool, error) {
	args := m.Called(ctx, c)
	return args.Bool(0), args.Error(1)
}

type MockPricingRepository struct{ mock.Mock }

func (m *MockPricingRepository) Get(ctx context.Context, productID string) (*pricing.Record, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.Record), args.Error(1)
}

func (m *MockPricingRepository) Add(ctx context.Context, r *pricing.Record) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockPricingRepository) Update(ctx context.Context, r *pricing.Record) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

// MockUoW satisfies every stage's unit of work.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) DemandRepository() ports.DemandRepository {
	args := m.Called()
	return args.Get(0).(ports.DemandRepository)
}

func (m *MockUoW) PricingRepository() ports.PricingRepository {
	args := m.Called()
	return args.Get(0).(ports.PricingRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockDemandUoWFactory struct{ mock.Mock }

func (m *MockDemandUoWFactory) Create() commands.DemandUoW {
	args := m.Called()
	return args.Get(0).(commands.DemandUoW)
}

type MockPricingUoWFactory struct{ mock.Mock }

func (m *MockPricingUoWFactory) Create() commands.PricingUoW {
	args := m.Called()
	return args.Get(0).(commands.PricingUoW)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, e events.Envelope) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

type MockNotificationChannel struct{ mock.Mock }

func (m *MockNotificationChannel) Send(ctx context.Context, subject, message string) error {
	args := m.Called(ctx, subject, message)
	return args.Error(0)
}

// envelopeOf matches a published envelope by source and detail type.
func envelopeOf(source, detailType string) any {
	return mock.MatchedBy(func(e events.Envelope) bool {
		return e.Source == source && e.DetailType == detailType
	})
}
