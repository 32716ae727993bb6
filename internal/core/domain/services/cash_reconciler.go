package services

import (
	"errors"
	"fmt"
	"sort"

	"dispatch/internal/core/domain/model/kernel"
)

var (
	// ErrInsufficientPayment is returned when the tendered cash amount does not
	// cover the total due.
	ErrInsufficientPayment = errors.New("tendered amount is less than total due")

	// ErrDenominationNotAccepted is returned when the tendered amount cannot be
	// composed from the accepted denominations, or requires a note above the
	// configured ceiling.
	ErrDenominationNotAccepted = errors.New("denomination not accepted")

	// ErrInvalidAmount is returned when a monetary input is malformed.
	ErrInvalidAmount = errors.New("amount is invalid")

	// ErrNegativeChange signals a broken insufficiency check. It must never be
	// observed by callers; reconciliation validates before any arithmetic.
	ErrNegativeChange = errors.New("computed change is negative")
)

// CashRules holds the configured cash acceptance policy: the denominations a
// courier carries change for, in cents, and the ceiling above which notes are
// refused outright.
type CashRules struct {
	// denominations are the accepted note and coin values in cents,
	// sorted descending.
	denominations []int64
	// ceilingCents is the largest note value a courier accepts.
	ceilingCents int64
}

// NewCashRules creates a cash acceptance policy. Denominations are given in
// cents and must be positive; the ceiling bounds the largest acceptable note.
func NewCashRules(denominations []int64, ceilingCents int64) (CashRules, error) {
	if len(denominations) == 0 {
		return CashRules{}, fmt.Errorf("%w: no denominations configured", ErrInvalidAmount)
	}
	if ceilingCents <= 0 {
		return CashRules{}, fmt.Errorf("%w: ceiling %d is not positive", ErrInvalidAmount, ceilingCents)
	}

	sorted := make([]int64, len(denominations))
	copy(sorted, denominations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] > sorted[j] })

	for _, d := range sorted {
		if d <= 0 {
			return CashRules{}, fmt.Errorf("%w: denomination %d is not positive", ErrInvalidAmount, d)
		}
	}

	return CashRules{denominations: sorted, ceilingCents: ceilingCents}, nil
}

// Reconciliation is the accepted outcome of a cash check: the effective
// tendered amount and the change owed to the customer.
type Reconciliation struct {
	Tendered  kernel.Money
	ChangeDue kernel.Money
}

// CashReconciler validates tendered cash against a total due and computes
// change. It is pure and stateless; all validation happens before any
// result is produced, so a failed reconciliation never leaves partial state.
type CashReconciler struct {
	rules CashRules
}

// NewCashReconciler creates a CashReconciler enforcing the given rules.
func NewCashReconciler(rules CashRules) CashReconciler {
	return CashReconciler{rules: rules}
}

// Reconcile checks a tendered cash amount against the total due.
//
// A nil tendered amount means the customer pays exactly: the result tenders
// the total due with zero change. Otherwise the tendered amount must cover
// the total, and must be payable with accepted notes: it is decomposed
// greedily from the largest accepted denomination down, and any amount that
// needs a note above the ceiling, or leaves a remainder no denomination
// covers, is refused with ErrDenominationNotAccepted.
func (r CashReconciler) Reconcile(totalDue kernel.Money, tendered *kernel.Money) (Reconciliation, error) {
	if tendered == nil {
		return Reconciliation{Tendered: totalDue, ChangeDue: kernel.ZeroMoney()}, nil
	}

	if tendered.LessThan(totalDue) {
		return Reconciliation{}, fmt.Errorf("%w: tendered %s, due %s",
			ErrInsufficientPayment, tendered, totalDue)
	}

	if err := r.validateComposable(tendered.Cents()); err != nil {
		return Reconciliation{}, err
	}

	change, err := tendered.Sub(totalDue)
	if err != nil {
		return Reconciliation{}, ErrNegativeChange
	}

	return Reconciliation{Tendered: *tendered, ChangeDue: change}, nil
}

// validateComposable checks the amount can be paid with accepted notes.
// Greedy decomposition from the largest denomination down; the largest note
// the decomposition would use must not exceed the ceiling.
func (r CashReconciler) validateComposable(amountCents int64) error {
	if amountCents == 0 {
		return nil
	}

	remaining := amountCents
	for _, d := range r.rules.denominations {
		if remaining < d {
			continue
		}

		if d > r.rules.ceilingCents {
			return fmt.Errorf("%w: note of %d cents exceeds ceiling of %d cents",
				ErrDenominationNotAccepted, d, r.rules.ceilingCents)
		}

		remaining %= d
	}

	if remaining != 0 {
		return fmt.Errorf("%w: %d cents cannot be composed from accepted denominations",
			ErrDenominationNotAccepted, amountCents)
	}

	return nil
}
