package cmd

import (
	"context"
	"errors"
	"fmt"

	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/eventbus"
	"dispatch/internal/adapters/out/kafka"
	"dispatch/internal/adapters/out/postgres"
	redisstore "dispatch/internal/adapters/out/redis"
	"dispatch/internal/core/application/positions"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"
	"dispatch/internal/session"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CompositionRoot owns the adapters and builds every handler from them.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	locations  ports.LocationStore
	bus        *eventbus.Bus
	publisher  ports.EventPublisher
	logger     *zap.Logger
	closers    []func() error
}

// NewCompositionRoot connects the optional Redis cache and Kafka feed. Events always
// reach the in-process bus.
func NewCompositionRoot(config Config, gormDB *gorm.DB, log *zap.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		bus:        eventbus.NewBus(log),
		logger:     log,
	}
	fanout := eventbus.Fanout{c.bus}

	if config.RedisURL != "" {
		store, err := redisstore.NewLocationStore(config.RedisURL, redisstore.DefaultTTL)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		c.locations = store
		c.closers = append(c.closers, store.Close)
	}

	if brokers := config.Brokers(); len(brokers) > 0 {
		feed, err := kafka.NewPublisher(brokers, config.KafkaOrderEventsTopic, log)
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("connect kafka: %w", err)
		}
		fanout = append(fanout, feed)
		c.closers = append(c.closers, feed.Close)
	}

	c.publisher = fanout
	return c, nil
}

// Close releases the Redis and Kafka clients.
func (c *CompositionRoot) Close() error {
	var err error
	for i := len(c.closers) - 1; i >= 0; i-- {
		err = errors.Join(err, c.closers[i]())
	}
	c.closers = nil
	return err
}

func (c *CompositionRoot) Bus() *eventbus.Bus { return c.bus }

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) orderUoW() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) courierUoW() commands.CourierUoWFactory {
	return FuncCourierUoWFactory(func() commands.CourierUoW { return c.uowFactory.Create() })
}

// readRepos returns repositories outside any transaction for the query side.
func (c *CompositionRoot) readRepos() (ports.OrderRepository, ports.CourierRepository) {
	uow := c.uowFactory.Create()
	return uow.OrderRepository(), uow.CourierRepository()
}

func (c *CompositionRoot) resolver() positions.Resolver {
	return positions.NewResolver(c.locations, c.logger)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.uow(), c.publisher, nil)
}

func (c *CompositionRoot) CreateCreateDirectOrderCommandHandler() commands.CreateDirectOrderCommandHandler {
	return commands.NewCreateDirectOrderCommandHandler(c.uow(), c.publisher, nil)
}

func (c *CompositionRoot) CreateSetOrderPriceCommandHandler() commands.SetOrderPriceCommandHandler {
	return commands.NewSetOrderPriceCommandHandler(c.orderUoW(), c.publisher, nil)
}

func (c *CompositionRoot) CreateAssignCourierCommandHandler() commands.AssignCourierCommandHandler {
	return commands.NewAssignCourierCommandHandler(c.uow(), c.publisher, nil)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.orderUoW(), c.publisher, nil)
}

func (c *CompositionRoot) CreatePostChatMessageCommandHandler() commands.PostChatMessageCommandHandler {
	return commands.NewPostChatMessageCommandHandler(c.orderUoW(), c.publisher, nil)
}

func (c *CompositionRoot) CreateRateOrderCommandHandler() commands.RateOrderCommandHandler {
	return commands.NewRateOrderCommandHandler(c.orderUoW(), c.publisher, nil)
}

func (c *CompositionRoot) CreateSettleOrdersCommandHandler() commands.SettleOrdersCommandHandler {
	return commands.NewSettleOrdersCommandHandler(c.orderUoW(), c.publisher, nil)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.orderUoW())
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() commands.CreateCourierCommandHandler {
	return commands.NewCreateCourierCommandHandler(c.courierUoW(), c.publisher, nil)
}

func (c *CompositionRoot) CreateUpdateCourierLocationCommandHandler() commands.UpdateCourierLocationCommandHandler {
	return commands.NewUpdateCourierLocationCommandHandler(c.courierUoW(), c.locations, c.publisher, nil)
}

func (c *CompositionRoot) CreateSetCourierOnlineCommandHandler() commands.SetCourierOnlineCommandHandler {
	return commands.NewSetCourierOnlineCommandHandler(c.courierUoW(), c.publisher, nil)
}

func (c *CompositionRoot) CreateConfirmStopCommandHandler() commands.ConfirmStopCommandHandler {
	return commands.NewConfirmStopCommandHandler(c.uow(), c.resolver(), c.publisher, nil)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	orders, _ := c.readRepos()
	return queries.NewGetOrderQueryHandler(orders)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	orders, _ := c.readRepos()
	return queries.NewListOrdersQueryHandler(orders)
}

func (c *CompositionRoot) CreateGetDelayedOrdersQueryHandler() queries.GetDelayedOrdersQueryHandler {
	orders, _ := c.readRepos()
	return queries.NewGetDelayedOrdersQueryHandler(orders, nil)
}

func (c *CompositionRoot) CreateListCouriersQueryHandler() queries.ListCouriersQueryHandler {
	return queries.NewListCouriersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCourierRouteQueryHandler() queries.GetCourierRouteQueryHandler {
	orders, couriers := c.readRepos()
	return queries.NewGetCourierRouteQueryHandler(orders, couriers, c.resolver(), c.logger)
}

// HTTPHandlers wires every use case the API exposes.
func (c *CompositionRoot) HTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		CreateOrder:           c.CreateCreateOrderCommandHandler(),
		CreateDirectOrder:     c.CreateCreateDirectOrderCommandHandler(),
		SetOrderPrice:         c.CreateSetOrderPriceCommandHandler(),
		AssignCourier:         c.CreateAssignCourierCommandHandler(),
		UpdateOrderStatus:     c.CreateUpdateOrderStatusCommandHandler(),
		PostChatMessage:       c.CreatePostChatMessageCommandHandler(),
		RateOrder:             c.CreateRateOrderCommandHandler(),
		SettleOrders:          c.CreateSettleOrdersCommandHandler(),
		DeleteOrder:           c.CreateDeleteOrderCommandHandler(),
		CreateCourier:         c.CreateCreateCourierCommandHandler(),
		UpdateCourierLocation: c.CreateUpdateCourierLocationCommandHandler(),
		SetCourierOnline:      c.CreateSetCourierOnlineCommandHandler(),
		ConfirmStop:           c.CreateConfirmStopCommandHandler(),
		GetOrder:              c.CreateGetOrderQueryHandler(),
		ListOrders:            c.CreateListOrdersQueryHandler(),
		GetDelayedOrders:      c.CreateGetDelayedOrdersQueryHandler(),
		ListCouriers:          c.CreateListCouriersQueryHandler(),
		GetCourierRoute:       c.CreateGetCourierRouteQueryHandler(),
		Sessions:              c,
	}
}

// HealthChecks pings Postgres and, when configured, Redis.
func (c *CompositionRoot) HealthChecks() map[string]httpin.HealthCheck {
	checks := map[string]httpin.HealthCheck{
		"postgres": func(ctx context.Context) error {
			sqlDB, err := c.gormDB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if store, ok := c.locations.(*redisstore.LocationStore); ok {
		checks["redis"] = store.Ping
	}
	return checks
}

// Jobs returns the delay monitor and, when AUTO_DISPATCH_SPEC is set, the
// auto-dispatch job.
func (c *CompositionRoot) Jobs() *jobs.JobManager {
	delay := jobs.NewDelayMonitorJob(
		c.CreateGetDelayedOrdersQueryHandler(),
		c.publisher,
		c.config.DelayThreshold,
		c.config.DelayCheckSpec,
		c.logger,
	)

	var autoDispatch jobs.Job
	if c.config.AutoDispatchSpec != "" {
		autoDispatch = jobs.NewAutoDispatchJob(c.CreateAssignCourierCommandHandler(), c.config.AutoDispatchSpec, c.logger)
	}

	return jobs.NewJobManager(c.logger, delay, autoDispatch)
}

// NewCourierSession builds a live route feed for one courier. coords may be nil.
func (c *CompositionRoot) NewCourierSession(
	courierID kernel.UUID,
	traffic string,
	coords <-chan kernel.Location,
) (*session.CourierSession, error) {
	return session.NewCourierSession(
		courierID,
		traffic,
		coords,
		c.CreateGetCourierRouteQueryHandler(),
		c.CreateUpdateCourierLocationCommandHandler(),
		c.bus,
		c.logger,
	)
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
