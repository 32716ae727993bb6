package cmd

import (
	"fmt"
	"log/slog"

	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires domain services, use case handlers, and adapters
// from the application configuration. Handlers are created on demand; the
// unit of work factory and domain services are shared.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	tariff     services.Tariff
	dispatcher services.Dispatcher
	reconciler services.CashReconciler
}

// NewCompositionRoot builds the object graph. Fails when the configured
// cash rules are invalid.
func NewCompositionRoot(config Config, gormDB *gorm.DB) (CompositionRoot, error) {
	rules, err := services.NewCashRules(config.CashDenominations, config.CashNoteCeilingCents)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("invalid cash rules: %w", err)
	}

	tariff := services.NewTariff(config.BaseFee, config.PerKmRate)

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		tariff:     tariff,
		dispatcher: services.NewDispatcher(tariff),
		reconciler: services.NewCashReconciler(rules),
	}, nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.createOrderUoWFactory())
}

func (c *CompositionRoot) CreateConfirmOrderCommandHandler() commands.ConfirmOrderCommandHandler {
	return commands.NewConfirmOrderCommandHandler(c.createOrderUoWFactory())
}

func (c *CompositionRoot) CreateMarkOrderReadyCommandHandler() commands.MarkOrderReadyCommandHandler {
	return commands.NewMarkOrderReadyCommandHandler(c.createUoWFactory(), c.reconciler, c.dispatcher)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() commands.CreateCourierCommandHandler {
	return commands.NewCreateCourierCommandHandler(c.createCourierUoWFactory())
}

func (c *CompositionRoot) CreateApproveCourierCommandHandler() commands.ApproveCourierCommandHandler {
	return commands.NewApproveCourierCommandHandler(c.createCourierUoWFactory())
}

func (c *CompositionRoot) CreateReportCourierStatusCommandHandler() commands.ReportCourierStatusCommandHandler {
	return commands.NewReportCourierStatusCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateAcceptDeliveryCommandHandler() commands.AcceptDeliveryCommandHandler {
	return commands.NewAcceptDeliveryCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateCollectDeliveryCommandHandler() commands.CollectDeliveryCommandHandler {
	return commands.NewCollectDeliveryCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	return commands.NewCompleteDeliveryCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateCancelDeliveryCommandHandler() commands.CancelDeliveryCommandHandler {
	return commands.NewCancelDeliveryCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateDispatchOrderCommandHandler() commands.DispatchOrderCommandHandler {
	return commands.NewDispatchOrderCommandHandler(c.createUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateExpireStaleOffersCommandHandler() commands.ExpireStaleOffersCommandHandler {
	return commands.NewExpireStaleOffersCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateGetReadyOrdersQueryHandler() queries.GetReadyOrdersQueryHandler {
	return queries.NewGetReadyOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveDeliveriesQueryHandler() queries.GetActiveDeliveriesQueryHandler {
	return queries.NewGetActiveDeliveriesQueryHandler(c.gormDB)
}

// CreateHTTPServer bundles every HTTP-facing handler into the server.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateOrder:    c.CreateCreateOrderCommandHandler(),
		ConfirmOrder:   c.CreateConfirmOrderCommandHandler(),
		MarkOrderReady: c.CreateMarkOrderReadyCommandHandler(),
		CancelOrder:    c.CreateCancelOrderCommandHandler(),

		CreateCourier:       c.CreateCreateCourierCommandHandler(),
		ApproveCourier:      c.CreateApproveCourierCommandHandler(),
		ReportCourierStatus: c.CreateReportCourierStatusCommandHandler(),

		AcceptDelivery:   c.CreateAcceptDeliveryCommandHandler(),
		CollectDelivery:  c.CreateCollectDeliveryCommandHandler(),
		CompleteDelivery: c.CreateCompleteDeliveryCommandHandler(),
		CancelDelivery:   c.CreateCancelDeliveryCommandHandler(),

		GetReadyOrders:      c.CreateGetReadyOrdersQueryHandler(),
		GetActiveDeliveries: c.CreateGetActiveDeliveriesQueryHandler(),
	})
}

// CreateJobManager wires the background jobs against the configured cadence.
func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateDispatchOrderCommandHandler(),
		c.CreateExpireStaleOffersCommandHandler(),
		c.config.DispatchRetryCron,
		c.config.OfferTimeout,
		logger,
	)
}

func (c *CompositionRoot) createUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) createOrderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) createCourierUoWFactory() commands.CourierUoWFactory {
	return FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
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
