package commands

import (
	"context"
)

// CollectDeliveryCommandHandler processes order pickups at the restaurant.
type CollectDeliveryCommandHandler struct {
	uowFactory UoWFactory
}

// NewCollectDeliveryCommandHandler creates a handler for order collection.
func NewCollectDeliveryCommandHandler(uowFactory UoWFactory) CollectDeliveryCommandHandler {
	return CollectDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the delivery and records the pickup. After collection the
// delivery can no longer be cancelled.
func (h CollectDeliveryCommandHandler) Handle(ctx context.Context, command CollectDeliveryCommand) error {
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

	d, err := deliveryRepo.Get(ctx, command.DeliveryID())
	if err != nil {
		return err
	}

	if err = d.Collect(command.CourierID()); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
