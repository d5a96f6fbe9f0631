package cmd

import (
	"time"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/stripegw"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB        *gorm.DB
	uowFactory    postgres.GormUnitOfWorkFactory
	gateway       ports.PaymentGateway
	refundTimeout time.Duration
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:        gormDB,
		uowFactory:    *postgres.NewGormUnitOfWorkFactory(gormDB),
		gateway:       stripegw.NewGateway(config.StripeAPIKey),
		refundTimeout: config.RefundTimeout,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) uoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateSubmitCancellationCommandHandler() commands.SubmitCancellationCommandHandler {
	return commands.NewSubmitCancellationCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateResolveCancellationCommandHandler() commands.ResolveCancellationCommandHandler {
	return commands.NewResolveCancellationCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateSubmitReturnCommandHandler() commands.SubmitReturnCommandHandler {
	return commands.NewSubmitReturnCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateResolveReturnCommandHandler() commands.ResolveReturnCommandHandler {
	return commands.NewResolveReturnCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateExecuteRouteAssignmentCommandHandler() commands.ExecuteRouteAssignmentCommandHandler {
	return commands.NewExecuteRouteAssignmentCommandHandler(c.uoWFactory())
}

func (c *CompositionRoot) CreateSetRouteStatusCommandHandler() commands.SetRouteStatusCommandHandler {
	return commands.NewSetRouteStatusCommandHandler(c.uoWFactory())
}

func (c *CompositionRoot) CreateDeleteRouteCommandHandler() commands.DeleteRouteCommandHandler {
	return commands.NewDeleteRouteCommandHandler(c.uoWFactory())
}

func (c *CompositionRoot) CreateRefundOrderCommandHandler() commands.RefundOrderCommandHandler {
	return commands.NewRefundOrderCommandHandler(c.orderUoWFactory(), c.gateway, c.refundTimeout)
}

func (c *CompositionRoot) CreatePreviewRouteAssignmentQueryHandler() queries.PreviewRouteAssignmentQueryHandler {
	return queries.NewPreviewRouteAssignmentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPendingRequestsQueryHandler() queries.GetPendingRequestsQueryHandler {
	return queries.NewGetPendingRequestsQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
