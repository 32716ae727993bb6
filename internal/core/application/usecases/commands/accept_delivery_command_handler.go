package commands

import (
	"context"
)

// AcceptDeliveryCommandHandler processes delivery offer acceptances.
type AcceptDeliveryCommandHandler struct {
	uowFactory UoWFactory
}

// NewAcceptDeliveryCommandHandler creates a handler for offer acceptance.
func NewAcceptDeliveryCommandHandler(uowFactory UoWFactory) AcceptDeliveryCommandHandler {
	return AcceptDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the delivery and records the courier's acceptance.
// Fails with delivery.ErrAlreadyAssigned when a different courier tries to
// accept, or on a second acceptance.
func (h AcceptDeliveryCommandHandler) Handle(ctx context.Context, command AcceptDeliveryCommand) error {
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

	if err = d.Accept(command.CourierID()); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
