package cmd

import (
	"log/slog"

	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/catalogrepo"
	"fulfillment/internal/adapters/out/redis/cartstore"
	"fulfillment/internal/core/application/cartsession"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	carts      *cartsession.Registry
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, redisClient *redis.Client, logger *slog.Logger) CompositionRoot {
	store := cartstore.NewRedisCartStore(redisClient, config.CartTTL)
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		carts:      cartsession.NewRegistry(store, logger, cartsession.WithIdleTimeout(config.CartSessionIdle)),
		logger:     logger,
	}
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoW() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) courierUoW() commands.CourierUoWFactory {
	return FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) offerUoW() commands.OfferUoWFactory {
	return FuncOfferUoWFactory(func() commands.OfferUoW {
		return c.uowFactory.Create()
	})
}

// readRepositories are bound to the plain connection; queries never begin a transaction.
func (c *CompositionRoot) readRepositories() ports.UnitOfWork {
	return c.uowFactory.Create()
}

func (c *CompositionRoot) CreateCatalog() ports.Catalog {
	return catalogrepo.NewGormCatalog(c.gormDB)
}

func (c *CompositionRoot) CreateCheckoutCommandHandler() commands.CheckoutCommandHandler {
	return commands.NewCheckoutCommandHandler(c.orderUoW(), c.CreateCatalog(), services.ZeroPricingPolicy{})
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(c.uow())
}

func (c *CompositionRoot) CreateAssignCourierCommandHandler() commands.AssignCourierCommandHandler {
	return commands.NewAssignCourierCommandHandler(c.uow())
}

func (c *CompositionRoot) CreateUnassignCourierCommandHandler() commands.UnassignCourierCommandHandler {
	return commands.NewUnassignCourierCommandHandler(c.orderUoW())
}

func (c *CompositionRoot) CreateTakeOrderCommandHandler() commands.TakeOrderCommandHandler {
	return commands.NewTakeOrderCommandHandler(c.uow())
}

func (c *CompositionRoot) CreateRecordDeliveryCommandHandler() commands.RecordDeliveryCommandHandler {
	return commands.NewRecordDeliveryCommandHandler(c.uow())
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() commands.CreateCourierCommandHandler {
	return commands.NewCreateCourierCommandHandler(c.courierUoW())
}

func (c *CompositionRoot) CreateChangeOperationalStatusCommandHandler() commands.ChangeOperationalStatusCommandHandler {
	return commands.NewChangeOperationalStatusCommandHandler(c.courierUoW())
}

func (c *CompositionRoot) CreateUpdateLocationCommandHandler() commands.UpdateLocationCommandHandler {
	return commands.NewUpdateLocationCommandHandler(c.courierUoW())
}

func (c *CompositionRoot) CreateSubmitRatingCommandHandler() commands.SubmitRatingCommandHandler {
	return commands.NewSubmitRatingCommandHandler(c.uow(), services.NewCourierRatingCalculator())
}

func (c *CompositionRoot) CreateDeleteRatingCommandHandler() commands.DeleteRatingCommandHandler {
	return commands.NewDeleteRatingCommandHandler(c.uow(), services.NewCourierRatingCalculator())
}

func (c *CompositionRoot) CreateDeactivateExpiredOffersCommandHandler() commands.DeactivateExpiredOffersCommandHandler {
	return commands.NewDeactivateExpiredOffersCommandHandler(c.offerUoW())
}

func (c *CompositionRoot) CreateListOrdersForRoleQueryHandler() *queries.ListOrdersForRoleQueryHandler {
	repos := c.readRepositories()
	return queries.NewListOrdersForRoleQueryHandler(repos.OrderRepository(), repos.CourierRepository())
}

func (c *CompositionRoot) CreateGetOrderTransitionsQueryHandler() *queries.GetOrderTransitionsQueryHandler {
	repos := c.readRepositories()
	return queries.NewGetOrderTransitionsQueryHandler(repos.OrderRepository(), repos.CourierRepository(), repos.StatusChangeLog())
}

func (c *CompositionRoot) CreateGetAllCouriersQueryHandler() queries.GetAllCouriersQueryHandler {
	return queries.NewGetAllCouriersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveDeliveriesQueryHandler() queries.GetActiveDeliveriesQueryHandler {
	return queries.NewGetActiveDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateRatableOrdersQueryHandler() queries.RatableOrdersQueryHandler {
	return queries.NewRatableOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateCourierRatingQueryHandler() queries.CourierRatingQueryHandler {
	return queries.NewCourierRatingQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	handlers := httpin.Handlers{
		Checkout:                c.CreateCheckoutCommandHandler(),
		TransitionOrder:         c.CreateTransitionOrderCommandHandler(),
		AssignCourier:           c.CreateAssignCourierCommandHandler(),
		UnassignCourier:         c.CreateUnassignCourierCommandHandler(),
		TakeOrder:               c.CreateTakeOrderCommandHandler(),
		RecordDelivery:          c.CreateRecordDeliveryCommandHandler(),
		CreateCourier:           c.CreateCreateCourierCommandHandler(),
		ChangeOperationalStatus: c.CreateChangeOperationalStatusCommandHandler(),
		UpdateLocation:          c.CreateUpdateLocationCommandHandler(),
		SubmitRating:            c.CreateSubmitRatingCommandHandler(),
		DeleteRating:            c.CreateDeleteRatingCommandHandler(),

		ListOrders:       c.CreateListOrdersForRoleQueryHandler(),
		OrderTransitions: c.CreateGetOrderTransitionsQueryHandler(),
		AllCouriers:      c.CreateGetAllCouriersQueryHandler(),
		ActiveDeliveries: c.CreateGetActiveDeliveriesQueryHandler(),
		RatableOrders:    c.CreateRatableOrdersQueryHandler(),
		CourierRating:    c.CreateCourierRatingQueryHandler(),
	}
	return httpin.NewServer(handlers, c.carts, c.CreateCatalog(), httpin.ContextIdentityProvider{}, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateDeactivateExpiredOffersCommandHandler(), c.config.OfferSweepSchedule, c.logger)
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncOfferUoWFactory func() commands.OfferUoW

func (f FuncOfferUoWFactory) Create() commands.OfferUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
