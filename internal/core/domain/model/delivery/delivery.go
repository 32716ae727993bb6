package delivery

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrDeliveryIsNotConstructed is returned when using an improperly initialized Delivery.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")

	// ErrAlreadyAssigned is returned when a courier other than the one the
	// delivery was offered to tries to act on it, or when the assigned courier
	// accepts twice.
	ErrAlreadyAssigned = errors.New("delivery is already assigned to another courier")
)

// Delivery is the aggregate root for one courier assignment of one order.
// It references exactly one order and exactly one courier, carries the
// pickup and drop-off coordinates, the pickup-to-drop-off distance, and the
// courier payout computed from it.
//
// A delivery exists only for orders that reached Ready; at most one
// non-terminal delivery may exist per order. That invariant is owned by the
// dispatch workflow and the delivery repository, not by this aggregate.
type Delivery struct {
	id        kernel.UUID
	orderID   kernel.UUID
	courierID kernel.UUID

	pickup     kernel.GeoPoint
	dropoff    kernel.GeoPoint
	distanceKm float64
	payout     kernel.Money

	status Status

	offeredAt   time.Time
	acceptedAt  *time.Time
	collectedAt *time.Time
	deliveredAt *time.Time
	cancelledAt *time.Time

	version int64

	guard guard.ConstructorGuard
}

// NewDelivery creates a Delivery in Offered status for the given order and
// the courier the dispatcher selected. distanceKm is the pickup-to-drop-off
// distance the payout was computed from.
func NewDelivery(
	id kernel.UUID,
	orderID kernel.UUID,
	courierID kernel.UUID,
	pickup kernel.GeoPoint,
	dropoff kernel.GeoPoint,
	distanceKm float64,
	payout kernel.Money,
) (*Delivery, error) {
	d := &Delivery{
		status:    Offered,
		offeredAt: time.Now().UTC(),
		version:   1,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setOrderID(orderID),
		d.setCourierID(courierID),
		d.setRoute(pickup, dropoff),
		d.setDistance(distanceKm),
	); err != nil {
		return nil, err
	}

	d.payout = payout
	return d, nil
}

// RestoreDelivery reconstructs a Delivery aggregate from persistent storage.
func RestoreDelivery(
	id kernel.UUID,
	orderID kernel.UUID,
	courierID kernel.UUID,
	pickup kernel.GeoPoint,
	dropoff kernel.GeoPoint,
	distanceKm float64,
	payout kernel.Money,
	status Status,
	offeredAt time.Time,
	acceptedAt, collectedAt, deliveredAt, cancelledAt *time.Time,
	version int64,
) (*Delivery, error) {
	d := &Delivery{
		offeredAt: offeredAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setOrderID(orderID),
		d.setCourierID(courierID),
		d.setRoute(pickup, dropoff),
		d.setDistance(distanceKm),
		d.setStatus(status),
		d.setVersion(version),
	); err != nil {
		return nil, err
	}

	d.payout = payout
	d.acceptedAt = acceptedAt
	d.collectedAt = collectedAt
	d.deliveredAt = deliveredAt
	d.cancelledAt = cancelledAt
	return d, nil
}

// Validate checks the Delivery was created through a factory method.
func (d *Delivery) Validate() error {
	if d == nil {
		return ErrDeliveryIsNotConstructed
	}
	return d.guard.Validate(ErrDeliveryIsNotConstructed)
}

// IsEqual compares two deliveries by their unique identifiers.
func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID { return d.id }

// OrderID returns the order this delivery fulfills.
func (d *Delivery) OrderID() kernel.UUID { return d.orderID }

// CourierID returns the courier the delivery was offered to.
func (d *Delivery) CourierID() kernel.UUID { return d.courierID }

// Pickup returns the restaurant coordinates.
func (d *Delivery) Pickup() kernel.GeoPoint { return d.pickup }

// Dropoff returns the customer coordinates.
func (d *Delivery) Dropoff() kernel.GeoPoint { return d.dropoff }

// DistanceKm returns the pickup-to-drop-off distance in kilometers.
func (d *Delivery) DistanceKm() float64 { return d.distanceKm }

// Payout returns the courier payout for this delivery.
func (d *Delivery) Payout() kernel.Money { return d.payout }

// Status returns the current delivery status.
func (d *Delivery) Status() Status { return d.status }

// OfferedAt returns when the delivery was offered to the courier.
func (d *Delivery) OfferedAt() time.Time { return d.offeredAt }

// AcceptedAt returns when the courier accepted, nil if never.
func (d *Delivery) AcceptedAt() *time.Time { return d.acceptedAt }

// CollectedAt returns when the courier collected the order, nil if never.
func (d *Delivery) CollectedAt() *time.Time { return d.collectedAt }

// DeliveredAt returns when the order was handed to the customer, nil if never.
func (d *Delivery) DeliveredAt() *time.Time { return d.deliveredAt }

// CancelledAt returns when the delivery was cancelled, nil if never.
func (d *Delivery) CancelledAt() *time.Time { return d.cancelledAt }

// Version returns the optimistic concurrency version of the aggregate.
func (d *Delivery) Version() int64 { return d.version }

// Accept records the courier's acknowledgement of the offer.
// Only the courier the delivery was offered to may accept; anyone else, or a
// second acceptance, fails with ErrAlreadyAssigned.
func (d *Delivery) Accept(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if !d.courierID.IsEqual(courierID) {
		return ErrAlreadyAssigned
	}
	if d.status == Accepted {
		return ErrAlreadyAssigned
	}

	return d.transition(Accepted)
}

// Collect records the courier picking the order up at the restaurant.
// Only the assigned courier may collect; the step is strictly sequential
// after acceptance and irreversible.
func (d *Delivery) Collect(courierID kernel.UUID) error {
	if err := d.validateActor(courierID); err != nil {
		return err
	}

	return d.transition(Collected)
}

// MarkDelivered records the hand-over to the customer. Terminal.
func (d *Delivery) MarkDelivered(courierID kernel.UUID) error {
	if err := d.validateActor(courierID); err != nil {
		return err
	}

	return d.transition(Delivered)
}

// Cancel abandons the delivery. Allowed only before collection.
func (d *Delivery) Cancel() error {
	return d.transition(Cancelled)
}

func (d *Delivery) validateActor(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if !d.courierID.IsEqual(courierID) {
		return ErrAlreadyAssigned
	}
	return nil
}

func (d *Delivery) transition(target Status) error {
	newStatus, err := d.status.TransitionTo(target)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	d.status = newStatus

	//nolint:exhaustive // Offered is the initial status, never a transition target
	switch newStatus {
	case Accepted:
		d.acceptedAt = &now
	case Collected:
		d.collectedAt = &now
	case Delivered:
		d.deliveredAt = &now
	case Cancelled:
		d.cancelledAt = &now
	}

	return nil
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Delivery) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("order id", err)
	}
	d.orderID = id
	return nil
}

func (d *Delivery) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("courier id", err)
	}
	d.courierID = id
	return nil
}

func (d *Delivery) setRoute(pickup, dropoff kernel.GeoPoint) error {
	if err := errors.Join(pickup.Validate(), dropoff.Validate()); err != nil {
		return err
	}

	d.pickup = pickup
	d.dropoff = dropoff
	return nil
}

func (d *Delivery) setDistance(distanceKm float64) error {
	if distanceKm < 0 {
		return errs.NewValueIsInvalidErrorWithCause("distance",
			fmt.Errorf("%f is negative", distanceKm))
	}
	d.distanceKm = distanceKm
	return nil
}

func (d *Delivery) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	d.status = status
	return nil
}

func (d *Delivery) setVersion(version int64) error {
	if version < 1 {
		return errs.NewVersionIsInvalidError("delivery version",
			fmt.Errorf("%d is not a positive version", version))
	}
	d.version = version
	return nil
}
