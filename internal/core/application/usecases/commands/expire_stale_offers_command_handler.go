package commands

import (
	"context"
	"time"
)

// ExpireStaleOffersCommandHandler cancels offers their couriers never
// acknowledged. Each expired offer releases its courier and returns the
// order to the dispatch pool, where the next sweep re-offers it.
type ExpireStaleOffersCommandHandler struct {
	uowFactory UoWFactory
}

// NewExpireStaleOffersCommandHandler creates a handler for offer expiry.
func NewExpireStaleOffersCommandHandler(uowFactory UoWFactory) ExpireStaleOffersCommandHandler {
	return ExpireStaleOffersCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle cancels every offered delivery older than the command's cutoff.
// The whole batch commits atomically; a conflicting update on any delivery
// aborts the batch, and the next run picks up whatever is still stale.
func (h ExpireStaleOffersCommandHandler) Handle(ctx context.Context, command ExpireStaleOffersCommand) error {
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

	cutoff := time.Now().UTC().Add(-command.MaxOfferAge())
	stale, err := deliveryRepo.GetAllStaleOffered(ctx, cutoff)
	if err != nil {
		return err
	}

	for _, d := range stale {
		if err = d.Cancel(); err != nil {
			return err
		}

		if err = deliveryRepo.Update(ctx, d); err != nil {
			return err
		}

		o, getErr := orderRepo.Get(ctx, d.OrderID())
		if getErr != nil {
			return getErr
		}

		if err = o.UnassignCourier(); err != nil {
			return err
		}

		if err = orderRepo.Update(ctx, o); err != nil {
			return err
		}

		if err = uow.CourierRepository().Release(ctx, d.CourierID()); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
