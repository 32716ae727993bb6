package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/services"
)

// MarkOrderReadyCommandHandler processes the ready transition: cash
// reconciliation, the status change, and an immediate dispatch attempt.
//
// The dispatch attempt is best-effort. An empty courier pool is not a
// failure: the order commits as ready and the scheduled sweep retries it.
// A rejected cash payment, by contrast, aborts the whole transition;
// nothing is persisted.
type MarkOrderReadyCommandHandler struct {
	uowFactory UoWFactory
	reconciler services.CashReconciler
	dispatcher services.Dispatcher
}

// NewMarkOrderReadyCommandHandler creates a handler for the ready transition.
func NewMarkOrderReadyCommandHandler(
	uowFactory UoWFactory,
	reconciler services.CashReconciler,
	dispatcher services.Dispatcher,
) MarkOrderReadyCommandHandler {
	return MarkOrderReadyCommandHandler{
		uowFactory: uowFactory,
		reconciler: reconciler,
		dispatcher: dispatcher,
	}
}

// Handle loads the order, reconciles cash payment if applicable, applies the
// Confirmed to Ready transition, and attempts dispatch in the same
// transaction.
func (h MarkOrderReadyCommandHandler) Handle(ctx context.Context, command MarkOrderReadyCommand) error {
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

	o, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if o.PaymentMethod().IsCash() {
		result, err := h.reconciler.Reconcile(o.Total(), o.Tendered())
		if err != nil {
			return err
		}

		if err = o.RecordCashReconciliation(result.Tendered, result.ChangeDue); err != nil {
			return err
		}
	}

	if err = o.MarkReady(); err != nil {
		return err
	}

	dispatchErr := tryDispatch(ctx, uow, h.dispatcher, o)
	dispatched := dispatchErr == nil
	if dispatchErr != nil &&
		!errors.Is(dispatchErr, services.ErrNoCourierAvailable) &&
		!errors.Is(dispatchErr, errClaimLost) {
		return dispatchErr
	}

	// tryDispatch persists the order itself when it succeeds
	if !dispatched {
		if err = orderRepo.Update(ctx, o); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
