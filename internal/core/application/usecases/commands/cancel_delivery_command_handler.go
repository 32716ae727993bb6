package commands

import (
	"context"
)

// CancelDeliveryCommandHandler abandons a delivery before collection,
// releasing the courier and returning the order to the dispatch pool.
type CancelDeliveryCommandHandler struct {
	uowFactory UoWFactory
}

// NewCancelDeliveryCommandHandler creates a handler for delivery cancellation.
func NewCancelDeliveryCommandHandler(uowFactory UoWFactory) CancelDeliveryCommandHandler {
	return CancelDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle cancels the delivery, releases its courier, and unassigns the order
// so the next dispatch sweep picks it up again.
func (h CancelDeliveryCommandHandler) Handle(ctx context.Context, command CancelDeliveryCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()
	orderRepo := uow.OrderRepository()

	d, err := deliveryRepo.Get(ctx, command.DeliveryID())
	if err != nil {
		return err
	}

	if err = d.Cancel(); err != nil {
		return err
	}

	o, err := orderRepo.Get(ctx, d.OrderID())
	if err != nil {
		return err
	}

	if err = o.UnassignCourier(); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, d); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.CourierRepository().Release(ctx, d.CourierID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
