package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
)

// ErrNoReadyOrders is returned when a dispatch sweep finds nothing to
// dispatch. Callers treat it as an idle tick, not a failure.
var ErrNoReadyOrders = errors.New("no ready orders awaiting dispatch")

// DispatchOrderCommandHandler runs dispatch sweeps over ready orders.
//
// Each sweep loads the ready unassigned orders oldest first and offers each
// to the nearest eligible courier. A courier lost to a concurrent dispatch
// (failed claim) or an empty pool leaves the order ready; the next sweep
// retries it. All changes of one sweep commit atomically.
type DispatchOrderCommandHandler struct {
	uowFactory UoWFactory
	dispatcher services.Dispatcher
}

// NewDispatchOrderCommandHandler creates a handler for dispatch sweeps.
func NewDispatchOrderCommandHandler(
	uowFactory UoWFactory,
	dispatcher services.Dispatcher,
) DispatchOrderCommandHandler {
	return DispatchOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the dispatch sweep command.
// Returns ErrNoReadyOrders when there was nothing to dispatch.
func (h DispatchOrderCommandHandler) Handle(ctx context.Context, command DispatchOrderCommand) error {
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

	readyOrders, err := uow.OrderRepository().GetAllReadyUnassigned(ctx)
	if err != nil {
		return err
	}
	if len(readyOrders) == 0 {
		return ErrNoReadyOrders
	}

	for _, o := range readyOrders {
		err := tryDispatch(ctx, uow, h.dispatcher, o)
		if errors.Is(err, errClaimLost) {
			// the chosen courier went to a concurrent dispatch; other
			// couriers may remain for the following orders
			continue
		}
		if errors.Is(err, services.ErrNoCourierAvailable) {
			// pool exhausted for this sweep
			break
		}
		if err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

// errClaimLost signals that the courier chosen for one order was claimed by
// a concurrent dispatch first. The sweep skips the order and moves on.
var errClaimLost = errors.New("chosen courier was claimed concurrently")

// tryDispatch offers one ready order to the nearest eligible courier inside
// the given unit of work. When no courier could be secured the order simply
// stays ready for the next sweep: services.ErrNoCourierAvailable means the
// pool is empty after filtering, errClaimLost that a concurrent dispatch
// won the chosen courier.
func tryDispatch(
	ctx context.Context,
	uow UoW,
	dispatcher services.Dispatcher,
	o *order.Order,
) error {
	couriers, err := uow.CourierRepository().GetAllEligible(ctx)
	if err != nil {
		return err
	}

	offer, best, err := dispatcher.Dispatch(o, kernel.NewUUID(), couriers)
	if err != nil {
		return err
	}

	claimed, err := uow.CourierRepository().Claim(ctx, best.ID())
	if err != nil {
		return err
	}
	if !claimed {
		// undo the in-memory assignment so the order persists unassigned
		if err = o.UnassignCourier(); err != nil {
			return err
		}
		return errClaimLost
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	return uow.DeliveryRepository().Add(ctx, offer)
}
