package commands

import (
	"context"
)

// CompleteDeliveryCommandHandler closes the delivery chain: delivery to
// Delivered, order to Completed, courier back in the pool. All three writes
// commit atomically; a conflicting concurrent update rolls the whole
// hand-over back.
type CompleteDeliveryCommandHandler struct {
	uowFactory UoWFactory
}

// NewCompleteDeliveryCommandHandler creates a handler for delivery completion.
func NewCompleteDeliveryCommandHandler(uowFactory UoWFactory) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle marks the delivery delivered, completes the order, and restores the
// courier's availability with an incremented delivery count.
func (h CompleteDeliveryCommandHandler) Handle(ctx context.Context, command CompleteDeliveryCommand) error {
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
	courierRepo := uow.CourierRepository()

	d, err := deliveryRepo.Get(ctx, command.DeliveryID())
	if err != nil {
		return err
	}

	if err = d.MarkDelivered(command.CourierID()); err != nil {
		return err
	}

	o, err := orderRepo.Get(ctx, d.OrderID())
	if err != nil {
		return err
	}

	if err = o.Complete(); err != nil {
		return err
	}

	c, err := courierRepo.Get(ctx, d.CourierID())
	if err != nil {
		return err
	}

	c.CompleteDelivery()

	if err = deliveryRepo.Update(ctx, d); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = courierRepo.Update(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
