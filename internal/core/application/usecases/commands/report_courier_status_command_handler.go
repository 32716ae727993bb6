package commands

import (
	"context"
	"errors"

	"dispatch/internal/pkg/errs"
)

// ErrCourierHasActiveDelivery is returned when a courier reports themselves
// available while still working a delivery. The availability flag is the
// dispatch claim token; handing it back early would let the courier be
// offered a second delivery while the first is still in flight.
var ErrCourierHasActiveDelivery = errors.New("courier has an active delivery")

// ReportCourierStatusCommandHandler records courier position and shift
// availability reports.
type ReportCourierStatusCommandHandler struct {
	uowFactory UoWFactory
}

// NewReportCourierStatusCommandHandler creates a handler for courier
// status reports.
func NewReportCourierStatusCommandHandler(uowFactory UoWFactory) ReportCourierStatusCommandHandler {
	return ReportCourierStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the courier, records the reported position and availability,
// and persists the change. A courier with a non-terminal delivery cannot
// report themselves available: the claim is released only by completing or
// cancelling the delivery.
func (h ReportCourierStatusCommandHandler) Handle(ctx context.Context, command ReportCourierStatusCommand) error {
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

	if command.Available() {
		_, err = uow.DeliveryRepository().GetActiveByCourierID(ctx, command.CourierID())
		if err == nil {
			return ErrCourierHasActiveDelivery
		}
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return err
		}
	}

	if err = c.UpdateLocation(command.Location()); err != nil {
		return err
	}
	c.SetAvailable(command.Available())

	if err = courierRepo.Update(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
