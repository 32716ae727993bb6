package commands

import (
	"context"
)

// ApproveCourierCommandHandler flips a courier's approval flag.
type ApproveCourierCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewApproveCourierCommandHandler creates a handler for courier approval.
func NewApproveCourierCommandHandler(uowFactory CourierUoWFactory) ApproveCourierCommandHandler {
	return ApproveCourierCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the courier, approves it, and persists the change.
func (h ApproveCourierCommandHandler) Handle(ctx context.Context, command ApproveCourierCommand) error {
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

	courierRepo := uow.CourierRepository()

	c, err := courierRepo.Get(ctx, command.CourierID())
	if err != nil {
		return err
	}

	c.Approve()

	if err = courierRepo.Update(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
