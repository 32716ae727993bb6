package order

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrCourierNotAssigned is returned when completing an order that has no
	// courier, which would bypass the delivery chain.
	ErrCourierNotAssigned = errors.New("order has no courier assigned")

	// ErrTotalMismatch is returned when the provided monetary components do not
	// add up to a non-negative total.
	ErrTotalMismatch = errors.New("order total must equal subtotal + fees - discount and be non-negative")
)

// Order is the aggregate root for a food-delivery order. It owns the order's
// status lifecycle, monetary breakdown, cash-handling fields, and the
// append-only status history.
//
// Invariants:
//   - total = subtotal + deliveryFee + serviceFee - discount, all non-negative
//   - status transitions follow the transition table in Status
//   - a courier reference may only exist from Ready onwards
//   - history is append-only and records every successful transition
//
// The aggregate is mutated only through its methods; persistence uses
// optimistic concurrency on Version to serialize concurrent writers.
type Order struct {
	id           kernel.UUID
	restaurantID kernel.UUID
	courierID    *kernel.UUID

	items          []Item
	address        Address
	pickupLocation kernel.GeoPoint
	paymentMethod  PaymentMethod

	subtotal    kernel.Money
	deliveryFee kernel.Money
	serviceFee  kernel.Money
	discount    kernel.Money
	total       kernel.Money

	// tendered and changeDue are set only for cash orders, after reconciliation.
	tendered  *kernel.Money
	changeDue *kernel.Money

	status  Status
	history []HistoryEntry

	createdAt   time.Time
	confirmedAt *time.Time
	readyAt     *time.Time
	completedAt *time.Time
	cancelledAt *time.Time

	version int64

	guard guard.ConstructorGuard
}

// NewOrder creates a new Order in Pending status.
//
// The total is derived from the monetary components and must be non-negative.
// The pickup location is the restaurant's coordinates, captured at order time
// so dispatch never needs to resolve the restaurant reference.
// tendered is the cash amount the customer announced, nil meaning exact
// payment; it is validated against denomination rules at dispatch time, not
// here.
func NewOrder(
	id kernel.UUID,
	restaurantID kernel.UUID,
	pickupLocation kernel.GeoPoint,
	address Address,
	items []Item,
	paymentMethod PaymentMethod,
	subtotal, deliveryFee, serviceFee, discount kernel.Money,
	tendered *kernel.Money,
) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		status:    Pending,
		createdAt: now,
		version:   1,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setRestaurantID(restaurantID),
		o.setPickupLocation(pickupLocation),
		o.setAddress(address),
		o.setItems(items),
		o.setPaymentMethod(paymentMethod),
		o.setAmounts(subtotal, deliveryFee, serviceFee, discount),
		o.setTendered(tendered),
	); err != nil {
		return nil, err
	}

	o.history = append(o.history, NewHistoryEntry(Pending, now, ""))
	return o, nil
}

// RestoreOrderParams carries the persisted state needed to rebuild an Order.
type RestoreOrderParams struct {
	ID             kernel.UUID
	RestaurantID   kernel.UUID
	CourierID      *kernel.UUID
	Items          []Item
	Address        Address
	PickupLocation kernel.GeoPoint
	PaymentMethod  PaymentMethod
	Subtotal       kernel.Money
	DeliveryFee    kernel.Money
	ServiceFee     kernel.Money
	Discount       kernel.Money
	Tendered       *kernel.Money
	ChangeDue      *kernel.Money
	Status         Status
	History        []HistoryEntry
	CreatedAt      time.Time
	ConfirmedAt    *time.Time
	ReadyAt        *time.Time
	CompletedAt    *time.Time
	CancelledAt    *time.Time
	Version        int64
}

// RestoreOrder reconstructs an Order aggregate from persistent storage,
// preserving its status, courier assignment, history, and version.
func RestoreOrder(p RestoreOrderParams) (*Order, error) {
	o := &Order{
		createdAt: p.CreatedAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(p.ID),
		o.setRestaurantID(p.RestaurantID),
		o.setPickupLocation(p.PickupLocation),
		o.setAddress(p.Address),
		o.setItems(p.Items),
		o.setPaymentMethod(p.PaymentMethod),
		o.setAmounts(p.Subtotal, p.DeliveryFee, p.ServiceFee, p.Discount),
		o.setTendered(p.Tendered),
		o.setStatus(p.Status),
		o.setCourierID(p.CourierID),
		o.setVersion(p.Version),
	); err != nil {
		return nil, err
	}

	o.changeDue = p.ChangeDue
	o.history = make([]HistoryEntry, len(p.History))
	copy(o.history, p.History)
	o.confirmedAt = p.ConfirmedAt
	o.readyAt = p.ReadyAt
	o.completedAt = p.CompletedAt
	o.cancelledAt = p.CancelledAt

	return o, nil
}

// Validate ensures the Order was properly constructed through a factory method.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// RestaurantID returns the originating restaurant reference.
func (o *Order) RestaurantID() kernel.UUID { return o.restaurantID }

// CourierID returns the assigned courier's ID, or nil if unassigned.
func (o *Order) CourierID() *kernel.UUID { return o.courierID }

// Items returns a copy of the ordered line items.
func (o *Order) Items() []Item {
	out := make([]Item, len(o.items))
	copy(out, o.items)
	return out
}

// Address returns the delivery destination.
func (o *Order) Address() Address { return o.address }

// PickupLocation returns the restaurant's coordinates.
func (o *Order) PickupLocation() kernel.GeoPoint { return o.pickupLocation }

// PaymentMethod returns the chosen payment method.
func (o *Order) PaymentMethod() PaymentMethod { return o.paymentMethod }

// Subtotal returns the sum of line item prices.
func (o *Order) Subtotal() kernel.Money { return o.subtotal }

// DeliveryFee returns the delivery fee charged to the customer.
func (o *Order) DeliveryFee() kernel.Money { return o.deliveryFee }

// ServiceFee returns the platform service fee.
func (o *Order) ServiceFee() kernel.Money { return o.serviceFee }

// Discount returns the discount applied to the order.
func (o *Order) Discount() kernel.Money { return o.discount }

// Total returns the amount due: subtotal + fees - discount.
func (o *Order) Total() kernel.Money { return o.total }

// Tendered returns the announced cash amount, or nil for exact payment.
func (o *Order) Tendered() *kernel.Money { return o.tendered }

// ChangeDue returns the change owed to the customer, set by cash
// reconciliation. Nil until reconciled.
func (o *Order) ChangeDue() *kernel.Money { return o.changeDue }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// History returns a copy of the append-only status history, oldest first.
func (o *Order) History() []HistoryEntry {
	out := make([]HistoryEntry, len(o.history))
	copy(out, o.history)
	return out
}

// CreatedAt returns when the order was placed.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// ConfirmedAt returns when the order was confirmed, nil if never.
func (o *Order) ConfirmedAt() *time.Time { return o.confirmedAt }

// ReadyAt returns when the order became ready for pickup, nil if never.
func (o *Order) ReadyAt() *time.Time { return o.readyAt }

// CompletedAt returns when the order was delivered, nil if never.
func (o *Order) CompletedAt() *time.Time { return o.completedAt }

// CancelledAt returns when the order was cancelled, nil if never.
func (o *Order) CancelledAt() *time.Time { return o.cancelledAt }

// Version returns the optimistic concurrency version of the aggregate.
func (o *Order) Version() int64 { return o.version }

// Confirm transitions the order from Pending to Confirmed.
func (o *Order) Confirm() error {
	return o.transition(Confirmed, "")
}

// MarkReady transitions the order from Confirmed to Ready, making it
// eligible for dispatch. The transition itself performs no assignment; it
// only guards legality, timestamps the change, and appends history.
func (o *Order) MarkReady() error {
	return o.transition(Ready, "")
}

// Complete transitions the order from Ready to Completed.
// A courier must be assigned: completion is reachable only through a
// delivered delivery, never directly.
func (o *Order) Complete() error {
	if o.courierID == nil {
		return ErrCourierNotAssigned
	}
	return o.transition(Completed, "")
}

// Cancel transitions the order to Cancelled from any non-terminal status.
// The note records the cancellation reason in the history.
func (o *Order) Cancel(note string) error {
	return o.transition(Cancelled, note)
}

// AssignCourier records the courier selected by dispatch.
// The order must be Ready and not already assigned.
func (o *Order) AssignCourier(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if o.status != Ready {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to assign a courier", o.status))
	}
	if o.courierID != nil {
		return errs.NewValueIsInvalidErrorWithCause("courier",
			fmt.Errorf("order already assigned to courier %s", o.courierID))
	}

	o.courierID = &courierID
	return nil
}

// UnassignCourier clears the courier reference after a cancelled delivery so
// the order returns to the dispatch pool. The order must still be Ready.
func (o *Order) UnassignCourier() error {
	if o.status != Ready {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to unassign a courier", o.status))
	}

	o.courierID = nil
	return nil
}

// RecordCashReconciliation stores the validated tendered amount and change
// due on a cash order. Called by the coordinator after the cash reconciler
// accepted the payment; writing happens only after full validation.
func (o *Order) RecordCashReconciliation(tendered, changeDue kernel.Money) error {
	if !o.paymentMethod.IsCash() {
		return errs.NewValueIsInvalidErrorWithCause("payment method",
			fmt.Errorf("%s order does not take cash reconciliation", o.paymentMethod))
	}

	t := tendered
	c := changeDue
	o.tendered = &t
	o.changeDue = &c
	return nil
}

// transition moves the order to target via the status transition table,
// stamping the per-status timestamp and appending a history entry.
func (o *Order) transition(target Status, note string) error {
	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	o.status = newStatus

	//nolint:exhaustive // only statuses reachable via transitions carry timestamps
	switch newStatus {
	case Confirmed:
		o.confirmedAt = &now
	case Ready:
		o.readyAt = &now
	case Completed:
		o.completedAt = &now
	case Cancelled:
		o.cancelledAt = &now
	}

	o.history = append(o.history, NewHistoryEntry(newStatus, now, note))
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("restaurant id", err)
	}
	o.restaurantID = id
	return nil
}

func (o *Order) setCourierID(id *kernel.UUID) error {
	if id == nil {
		return o.status.ValidateCanHaveCourier(false)
	}

	if err := id.Validate(); err != nil {
		return err
	}
	if err := o.status.ValidateCanHaveCourier(true); err != nil {
		return err
	}

	courierID := *id
	o.courierID = &courierID
	return nil
}

func (o *Order) setPickupLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	o.pickupLocation = location
	return nil
}

func (o *Order) setAddress(address Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.address = address
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("order items")
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setPaymentMethod(method PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	o.paymentMethod = method
	return nil
}

// setAmounts stores the monetary breakdown and derives the total.
// Money values are non-negative by construction; the derived total must not
// go negative after the discount.
func (o *Order) setAmounts(subtotal, deliveryFee, serviceFee, discount kernel.Money) error {
	total, err := subtotal.Add(deliveryFee).Add(serviceFee).Sub(discount)
	if err != nil {
		return ErrTotalMismatch
	}

	o.subtotal = subtotal
	o.deliveryFee = deliveryFee
	o.serviceFee = serviceFee
	o.discount = discount
	o.total = total
	return nil
}

func (o *Order) setTendered(tendered *kernel.Money) error {
	if tendered == nil {
		return nil
	}

	t := *tendered
	o.tendered = &t
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setVersion(version int64) error {
	if version < 1 {
		return errs.NewVersionIsInvalidError("order version",
			fmt.Errorf("%d is not a positive version", version))
	}
	o.version = version
	return nil
}
