package redisstream_test

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"pricing/internal/adapters/out/eventbus/redisstream"
	"pricing/internal/core/domain/events"
	"pricing/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

type BusTestSuite struct {
	suite.Suite
	container *tcredis.RedisContainer
	client    *redis.Client
}

func (suite *BusTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	suite.Require().NoError(err)
	suite.container = container

	uri, err := container.ConnectionString(ctx)
	suite.Require().NoError(err)
	opts, err := redis.ParseURL(uri)
	suite.Require().NoError(err)

	suite.client = redis.NewClient(opts)
	suite.Require().NoError(suite.client.Ping(ctx).Err())
}

func (suite *BusTestSuite) TearDownSuite() {
	if suite.client != nil {
		_ = suite.client.Close()
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *BusTestSuite) newBus(maxDeliveries int64) *redisstream.Bus {
	return redisstream.NewBus(suite.client, redisstream.Config{
		Stream:         "test-" + uuid.NewString(),
		GroupPrefix:    "test",
		Consumer:       "suite",
		Workers:        2,
		MaxDeliveries:  maxDeliveries,
		RedeliveryIdle: time.Millisecond,
		Block:          100 * time.Millisecond,
	}, slog.New(slog.DiscardHandler))
}

func (suite *BusTestSuite) run(bus *redisstream.Bus) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- bus.Run(ctx) }()
	suite.T().Cleanup(func() {
		cancel()
		suite.NoError(<-done)
	})
}

func (suite *BusTestSuite) envelope() events.Envelope {
	envelope, err := events.NewEnvelope(events.SourceDemandAnalysis, events.TypeHighDemand,
		events.NewHighDemandDetected("sku-1", 25))
	suite.Require().NoError(err)
	return envelope
}

func (suite *BusTestSuite) pendingCount(bus *redisstream.Bus, stream, stage string) int64 {
	pending, err := suite.client.XPending(context.Background(), stream, bus.Group(stage)).Result()
	suite.Require().NoError(err)
	return pending.Count
}

func (suite *BusTestSuite) TestPublishedEnvelopeReachesSubscribedStage() {
	bus := suite.newBus(5)
	received := make(chan events.Envelope, 1)
	bus.Subscribe("pricing", events.SourceDemandAnalysis, events.TypeHighDemand,
		func(_ context.Context, e events.Envelope) error {
			received <- e
			return nil
		})
	suite.run(bus)

	sent := suite.envelope()
	suite.Require().NoError(bus.Publish(context.Background(), sent))

	select {
	case got := <-received:
		suite.Equal(sent.ID, got.ID)
		suite.Equal(sent.Key(), got.Key())
		suite.JSONEq(string(sent.Detail), string(got.Detail))
	case <-time.After(10 * time.Second):
		suite.Fail("envelope was not delivered")
	}
}

func (suite *BusTestSuite) TestEnvelopePublishedBeforeRunIsDelivered() {
	bus := suite.newBus(5)
	var calls atomic.Int32
	bus.Subscribe("pricing", events.SourceDemandAnalysis, events.TypeHighDemand,
		func(_ context.Context, _ events.Envelope) error {
			calls.Add(1)
			return nil
		})
	suite.Require().NoError(bus.EnsureGroups(context.Background()))
	suite.Require().NoError(bus.Publish(context.Background(), suite.envelope()))

	suite.run(bus)

	suite.Eventually(func() bool { return calls.Load() == 1 }, 10*time.Second, 20*time.Millisecond)
}

func (suite *BusTestSuite) TestTerminalFailureIsAcknowledged() {
	bus := suite.newBus(5)
	var calls atomic.Int32
	bus.Subscribe("pricing", events.SourceDemandAnalysis, events.TypeHighDemand,
		func(_ context.Context, _ events.Envelope) error {
			calls.Add(1)
			return errs.NewValueIsRequiredError("product_id")
		})
	suite.run(bus)
	suite.Require().NoError(bus.Publish(context.Background(), suite.envelope()))

	suite.Eventually(func() bool { return calls.Load() == 1 }, 10*time.Second, 20*time.Millisecond)
	stream := bus.Stream()
	suite.Eventually(func() bool { return suite.pendingCount(bus, stream, "pricing") == 0 },
		5*time.Second, 20*time.Millisecond)
}

func (suite *BusTestSuite) TestRetryableFailureIsRedelivered() {
	bus := suite.newBus(5)
	var calls atomic.Int32
	bus.Subscribe("pricing", events.SourceDemandAnalysis, events.TypeHighDemand,
		func(_ context.Context, _ events.Envelope) error {
			if calls.Add(1) == 1 {
				return errs.NewObjectNotFoundError("demand", "sku-1")
			}
			return nil
		})
	suite.run(bus)
	suite.Require().NoError(bus.Publish(context.Background(), suite.envelope()))
	suite.Eventually(func() bool { return calls.Load() == 1 }, 10*time.Second, 20*time.Millisecond)

	stream := bus.Stream()
	suite.Equal(int64(1), suite.pendingCount(bus, stream, "pricing"))

	time.Sleep(10 * time.Millisecond)
	redelivered, err := bus.Redeliver(context.Background())

	suite.Require().NoError(err)
	suite.Equal(1, redelivered)
	suite.Equal(int32(2), calls.Load())
	suite.Equal(int64(0), suite.pendingCount(bus, stream, "pricing"))
}

func (suite *BusTestSuite) TestExhaustedEntryIsDropped() {
	bus := suite.newBus(2)
	var calls atomic.Int32
	bus.Subscribe("pricing", events.SourceDemandAnalysis, events.TypeHighDemand,
		func(_ context.Context, _ events.Envelope) error {
			calls.Add(1)
			return errs.NewObjectNotFoundError("demand", "sku-1")
		})
	suite.run(bus)
	suite.Require().NoError(bus.Publish(context.Background(), suite.envelope()))
	suite.Eventually(func() bool { return calls.Load() == 1 }, 10*time.Second, 20*time.Millisecond)
	stream := bus.Stream()

	time.Sleep(10 * time.Millisecond)
	redelivered, err := bus.Redeliver(context.Background())
	suite.Require().NoError(err)
	suite.Equal(1, redelivered)

	time.Sleep(10 * time.Millisecond)
	redelivered, err = bus.Redeliver(context.Background())
	suite.Require().NoError(err)
	suite.Equal(0, redelivered)

	suite.Equal(int32(2), calls.Load())
	suite.Equal(int64(0), suite.pendingCount(bus, stream, "pricing"))
}

func TestBusTestSuite(t *testing.T) {
	suite.Run(t, new(BusTestSuite))
}
