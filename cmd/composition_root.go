package cmd

import (
	"context"
	"fmt"
	"log/slog"

	httpadapter "pricing/internal/adapters/in/http"
	"pricing/internal/adapters/in/consumer"
	"pricing/internal/adapters/out/eventbus/memory"
	"pricing/internal/adapters/out/eventbus/redisstream"
	"pricing/internal/adapters/out/notification"
	"pricing/internal/adapters/out/postgres"
	"pricing/internal/core/application/usecases/commands"
	"pricing/internal/core/application/usecases/queries"
	"pricing/internal/core/ports"
	"pricing/internal/jobs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot owns the shared infrastructure and builds every handler from it.
// The event bus is created once so that publishers and subscribers share it.
type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	redis      redis.UniversalClient
	logger     *slog.Logger

	memoryBus *memory.Bus
	redisBus  *redisstream.Bus
}

// NewCompositionRoot expects redisClient to be non-nil whenever cfg.NeedsRedis reports true.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, redisClient redis.UniversalClient, logger *slog.Logger) *CompositionRoot {
	c := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, logger),
		redis:      redisClient,
		logger:     logger,
	}

	switch cfg.EventBusDriver {
	case EventBusDriverRedis:
		c.redisBus = redisstream.NewBus(redisClient, redisstream.Config{
			Stream:         cfg.EventBusStream,
			GroupPrefix:    cfg.EventBusGroupPrefix,
			Workers:        cfg.ConsumerWorkers,
			MaxDeliveries:  int64(cfg.EventBusMaxDeliveries),
			RedeliveryIdle: cfg.EventBusRedeliveryIdle,
		}, logger)
	default:
		c.memoryBus = memory.NewBus(cfg.ConsumerWorkers, cfg.EventBusMaxDeliveries, logger)
	}

	return c
}

func (c *CompositionRoot) EventPublisher() ports.EventPublisher {
	if c.redisBus != nil {
		return c.redisBus
	}
	return c.memoryBus
}

func (c *CompositionRoot) EventSubscriber() ports.EventSubscriber {
	if c.redisBus != nil {
		return c.redisBus
	}
	return c.memoryBus
}

func (c *CompositionRoot) NotificationChannel() ports.NotificationChannel {
	if c.cfg.NotificationDriver == NotificationDriverRedis {
		return notification.NewRedisChannel(c.redis, c.cfg.NotificationChannel)
	}
	return notification.NewLogChannel(c.logger)
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlaceOrderCommandHandler(f, c.EventPublisher(), c.logger)
}

func (c *CompositionRoot) CreateAccumulateDemandCommandHandler() commands.AccumulateDemandCommandHandler {
	var f commands.DemandUoWFactory = FuncDemandUoWFactory(func() commands.DemandUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAccumulateDemandCommandHandler(f, c.EventPublisher(), c.cfg.DemandAccumulationMode, c.logger)
}

func (c *CompositionRoot) CreateRecalculatePriceCommandHandler() commands.RecalculatePriceCommandHandler {
	var f commands.PricingUoWFactory = FuncPricingUoWFactory(func() commands.PricingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecalculatePriceCommandHandler(f, c.EventPublisher(), c.cfg.PricingEmitOnCreate, c.logger)
}

func (c *CompositionRoot) CreateNotifyPriceChangeCommandHandler() commands.NotifyPriceChangeCommandHandler {
	return commands.NewNotifyPriceChangeCommandHandler(c.NotificationChannel(), c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetProductPriceQueryHandler() queries.GetProductPriceQueryHandler {
	return queries.NewGetProductPriceQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetProductDemandQueryHandler() queries.GetProductDemandQueryHandler {
	return queries.NewGetProductDemandQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(
		c.CreatePlaceOrderCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetProductPriceQueryHandler(),
		c.CreateGetProductDemandQueryHandler(),
	)
}

// CreateConsumerRouter builds the downstream stages and subscribes them to the event bus.
func (c *CompositionRoot) CreateConsumerRouter() *consumer.Router {
	router := consumer.NewRouter(
		c.CreateAccumulateDemandCommandHandler(),
		c.CreateRecalculatePriceCommandHandler(),
		c.CreateNotifyPriceChangeCommandHandler(),
		c.logger,
	)
	router.Register(c.EventSubscriber())
	return router
}

// PrepareEventBus creates the consumer groups of the stages registered so far, so that the
// redelivery sweep never runs against a missing group. The in-memory bus needs nothing.
func (c *CompositionRoot) PrepareEventBus(ctx context.Context) error {
	if c.redisBus == nil {
		return nil
	}
	if err := c.redisBus.EnsureGroups(ctx); err != nil {
		return fmt.Errorf("prepare event bus: %w", err)
	}
	return nil
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	if c.redisBus == nil {
		return jobs.NewJobManager(nil, "", c.logger)
	}
	return jobs.NewJobManager(c.redisBus, c.cfg.EventBusRedeliverySchedule, c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDemandUoWFactory func() commands.DemandUoW

func (f FuncDemandUoWFactory) Create() commands.DemandUoW {
	return f()
}

type FuncPricingUoWFactory func() commands.PricingUoW

func (f FuncPricingUoWFactory) Create() commands.PricingUoW {
	return f()
}
