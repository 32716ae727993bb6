package commands

import (
	"context"
	"errors"

	"dispatch/internal/pkg/errs"
)

// CancelOrderCommandHandler cancels orders and whatever delivery is still in
// flight for them.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory UoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle cancels the order and, when an active delivery exists, cancels it
// too and releases its courier. An order whose delivery is already past
// collection cannot be cancelled; the delivery cancellation fails first and
// nothing is persisted.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, command CancelOrderCommand) error {
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

	orderRepo := uow.OrderRepository()
	deliveryRepo := uow.DeliveryRepository()

	o, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	d, err := deliveryRepo.GetActiveByOrderID(ctx, o.ID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		// nothing in flight
	case err != nil:
		return err
	default:
		if err = d.Cancel(); err != nil {
			return err
		}

		if err = deliveryRepo.Update(ctx, d); err != nil {
			return err
		}

		if err = uow.CourierRepository().Release(ctx, d.CourierID()); err != nil {
			return err
		}
	}

	if err = o.Cancel(command.Note()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
