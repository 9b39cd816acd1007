package cmd

import (
	"bookrider/internal/adapters/out/openroute"
	"bookrider/internal/adapters/out/postgres"
	"bookrider/internal/adapters/out/postgres/distancerepo"
	"bookrider/internal/adapters/out/routecache"
	"bookrider/internal/core/application/usecases/commands"
	"bookrider/internal/core/application/usecases/queries"
	"bookrider/internal/core/domain/services"
	"bookrider/internal/core/ports"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use case handlers. Handlers are
// created per call; the shared pieces (DB, geo client, notifier) live
// here.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	geocoder   openroute.Geocoder
	router     ports.Router
	calculator services.DeliveryCostCalculator
	notifier   ports.Notifier
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, notifier ports.Notifier) CompositionRoot {
	client := openroute.NewClient(config.ORSBaseURL, config.ORSAPIKey, config.ORSTimeout)
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		geocoder:   openroute.NewGeocoder(client),
		router: routecache.NewRouter(
			openroute.NewRouter(client),
			distancerepo.NewGormDistanceCacheRepository(gormDB)),
		calculator: services.NewDeliveryCostCalculator(),
		notifier:   notifier,
	}
}

func (c *CompositionRoot) CreateGenerateQuoteCommandHandler() commands.GenerateQuoteCommandHandler {
	var f commands.QuoteUoWFactory = FuncQuoteUoWFactory(func() commands.QuoteUoW {
		return c.uowFactory.Create()
	})
	return commands.NewGenerateQuoteCommandHandler(f, c.geocoder, c.router, c.calculator)
}

func (c *CompositionRoot) CreateAddQuoteOptionToCartCommandHandler() commands.AddQuoteOptionToCartCommandHandler {
	return commands.NewAddQuoteOptionToCartCommandHandler(c.cartUoWFactory(), c.calculator, c.notifier)
}

func (c *CompositionRoot) CreateSetDeliveryAddressCommandHandler() commands.SetDeliveryAddressCommandHandler {
	return commands.NewSetDeliveryAddressCommandHandler(
		c.cartUoWFactory(), c.geocoder, c.router, c.calculator, c.notifier)
}

func (c *CompositionRoot) CreateUpdateCartQuantityCommandHandler() commands.UpdateCartQuantityCommandHandler {
	return commands.NewUpdateCartQuantityCommandHandler(
		c.cartUoWFactory(), c.geocoder, c.router, c.calculator, c.notifier)
}

func (c *CompositionRoot) CreateRemoveCartSubItemCommandHandler() commands.RemoveCartSubItemCommandHandler {
	return commands.NewRemoveCartSubItemCommandHandler(
		c.cartUoWFactory(), c.geocoder, c.router, c.calculator, c.notifier)
}

func (c *CompositionRoot) CreateCheckoutCommandHandler() commands.CheckoutCommandHandler {
	var f commands.CheckoutUoWFactory = FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCheckoutCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	return commands.NewAcceptOrderCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateAssignDriverCommandHandler() commands.AssignDriverCommandHandler {
	return commands.NewAssignDriverCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreatePickUpOrderCommandHandler() commands.PickUpOrderCommandHandler {
	return commands.NewPickUpOrderCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateDeliverOrderCommandHandler() commands.DeliverOrderCommandHandler {
	return commands.NewDeliverOrderCommandHandler(c.orderUoWFactory(), c.calculator, c.notifier)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateCreateRentalReturnCommandHandler() commands.CreateRentalReturnCommandHandler {
	return commands.NewCreateRentalReturnCommandHandler(
		c.returnUoWFactory(), c.geocoder, c.router, c.calculator, c.notifier)
}

func (c *CompositionRoot) CreateCompleteRentalReturnCommandHandler() commands.CompleteRentalReturnCommandHandler {
	return commands.NewCompleteRentalReturnCommandHandler(c.returnUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateMarkOverdueRentalsCommandHandler() commands.MarkOverdueRentalsCommandHandler {
	var f commands.SweepUoWFactory = FuncSweepUoWFactory(func() commands.SweepUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkOverdueRentalsCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreatePurgeExpiredQuotesCommandHandler() commands.PurgeExpiredQuotesCommandHandler {
	var f commands.PurgeUoWFactory = FuncPurgeUoWFactory(func() commands.PurgeUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPurgeExpiredQuotesCommandHandler(f)
}

func (c *CompositionRoot) CreateGetCartQueryHandler() queries.GetCartQueryHandler {
	return queries.NewGetCartQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUserOrdersQueryHandler() queries.GetUserOrdersQueryHandler {
	return queries.NewGetUserOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUserRentalsQueryHandler() queries.GetUserRentalsQueryHandler {
	return queries.NewGetUserRentalsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUserTransactionsQueryHandler() queries.GetUserTransactionsQueryHandler {
	return queries.NewGetUserTransactionsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreatePreviewRentalReturnQueryHandler() queries.PreviewRentalReturnQueryHandler {
	return queries.NewPreviewRentalReturnQueryHandler(c.gormDB, c.geocoder, c.router, c.calculator)
}

func (c *CompositionRoot) cartUoWFactory() commands.CartUoWFactory {
	return FuncCartUoWFactory(func() commands.CartUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) returnUoWFactory() commands.ReturnUoWFactory {
	return FuncReturnUoWFactory(func() commands.ReturnUoW {
		return c.uowFactory.Create()
	})
}

// Func adapters bridge the wide ports.UnitOfWork the factory produces
// to the narrow unit of work each handler asks for. Go has no
// covariant returns, so the factory cannot implement the narrow
// interfaces directly.

type FuncQuoteUoWFactory func() commands.QuoteUoW

func (f FuncQuoteUoWFactory) Create() commands.QuoteUoW {
	return f()
}

type FuncCartUoWFactory func() commands.CartUoW

func (f FuncCartUoWFactory) Create() commands.CartUoW {
	return f()
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncReturnUoWFactory func() commands.ReturnUoW

func (f FuncReturnUoWFactory) Create() commands.ReturnUoW {
	return f()
}

type FuncSweepUoWFactory func() commands.SweepUoW

func (f FuncSweepUoWFactory) Create() commands.SweepUoW {
	return f()
}

type FuncPurgeUoWFactory func() commands.PurgeUoW

func (f FuncPurgeUoWFactory) Create() commands.PurgeUoW {
	return f()
}
