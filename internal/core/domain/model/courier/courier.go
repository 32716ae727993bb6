package courier

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when attempting to create a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
	// ErrCourierUnavailable is returned when claiming a courier whose
	// availability flag is already down.
	ErrCourierUnavailable = errors.New("courier is not available")
)

const (
	minRating = 0.0
	maxRating = 5.0
)

// Courier represents a delivery worker who can be matched to ready orders.
// It is an aggregate root owning the courier's approval, availability,
// position, and lifetime delivery statistics.
//
// A courier is eligible for dispatch only when approved, available, and
// positioned (valid coordinates known). The availability flag is the claim
// token of the assignment algorithm: claiming flips it to false, and only
// delivery completion or cancellation restores it. Persistence performs the
// flip as an atomic compare-and-set so two concurrent dispatches can never
// claim the same courier.
type Courier struct {
	id        kernel.UUID
	name      string
	vehicle   Vehicle
	approved  bool
	available bool
	location  *kernel.GeoPoint
	rating    float64
	// deliveries is the lifetime count of completed deliveries.
	deliveries int

	guard guard.ConstructorGuard
}

// NewCourier creates a new Courier. New couriers start unapproved,
// unavailable, and without a known position; onboarding flips approval and
// the courier reports availability and position afterwards.
func NewCourier(id kernel.UUID, name string, vehicle Vehicle) (*Courier, error) {
	c := &Courier{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setVehicle(vehicle),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCourier reconstructs a Courier aggregate from persistent storage,
// preserving approval, availability, position, rating, and delivery count.
func RestoreCourier(
	id kernel.UUID,
	name string,
	vehicle Vehicle,
	approved bool,
	available bool,
	location *kernel.GeoPoint,
	rating float64,
	deliveries int,
) (*Courier, error) {
	c := &Courier{
		approved:  approved,
		available: available,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setVehicle(vehicle),
		c.setLocation(location),
		c.setRating(rating),
		c.setDeliveries(deliveries),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate checks the Courier was created through a factory method.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// IsEqual compares two couriers by their unique identifiers.
func (c *Courier) IsEqual(other *Courier) bool {
	if other == nil {
		return false
	}
	return c.id.IsEqual(other.id)
}

// ID returns the courier's unique identifier.
func (c *Courier) ID() kernel.UUID { return c.id }

// Name returns the courier's display name.
func (c *Courier) Name() string { return c.name }

// Vehicle returns the courier's vehicle type.
func (c *Courier) Vehicle() Vehicle { return c.vehicle }

// IsApproved reports whether the courier passed onboarding approval.
func (c *Courier) IsApproved() bool { return c.approved }

// IsAvailable reports whether the courier can take a new delivery.
func (c *Courier) IsAvailable() bool { return c.available }

// Location returns the courier's last reported position, nil if unknown.
func (c *Courier) Location() *kernel.GeoPoint { return c.location }

// Rating returns the courier's current rating in [0, 5].
func (c *Courier) Rating() float64 { return c.rating }

// Deliveries returns the lifetime count of completed deliveries.
func (c *Courier) Deliveries() int { return c.deliveries }

// IsEligible reports whether the courier can be considered for dispatch:
// approved, available, and with a known valid position.
func (c *Courier) IsEligible() bool {
	return c.approved && c.available && c.location != nil
}

// Approve marks the courier as having passed onboarding.
func (c *Courier) Approve() {
	c.approved = true
}

// SetAvailable lets the courier report going on or off shift.
// It must not be used to claim a courier for a delivery; use Claim.
func (c *Courier) SetAvailable(available bool) {
	c.available = available
}

// UpdateLocation records the courier's current position.
func (c *Courier) UpdateLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}

	point := location
	c.location = &point
	return nil
}

// Claim marks the courier as taken by a delivery, flipping availability to
// false. Fails with ErrCourierUnavailable if the courier is already taken.
// This mirrors the atomic compare-and-set the repository performs; keeping
// the in-memory aggregate in step with the persisted flag.
func (c *Courier) Claim() error {
	if !c.available {
		return ErrCourierUnavailable
	}

	c.available = false
	return nil
}

// Release restores the courier's availability after a cancelled delivery.
func (c *Courier) Release() {
	c.available = true
}

// CompleteDelivery records a finished delivery: availability is restored and
// the lifetime delivery count incremented.
func (c *Courier) CompleteDelivery() {
	c.available = true
	c.deliveries++
}

// DistanceTo returns the distance in kilometers from the courier's current
// position to the target. Fails if the courier has no known position.
func (c *Courier) DistanceTo(target kernel.GeoPoint) (float64, error) {
	if c.location == nil {
		return 0, errs.NewValueIsRequiredError("courier location")
	}

	return c.location.DistanceTo(target)
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Courier) setVehicle(vehicle Vehicle) error {
	if err := vehicle.Validate(); err != nil {
		return err
	}
	c.vehicle = vehicle
	return nil
}

func (c *Courier) setLocation(location *kernel.GeoPoint) error {
	if location == nil {
		return nil
	}
	if err := location.Validate(); err != nil {
		return err
	}

	point := *location
	c.location = &point
	return nil
}

func (c *Courier) setRating(rating float64) error {
	if rating < minRating || rating > maxRating {
		return errs.NewValueIsOutOfRangeError("rating", rating, minRating, maxRating)
	}
	c.rating = rating
	return nil
}

func (c *Courier) setDeliveries(deliveries int) error {
	if deliveries < 0 {
		return errs.NewValueIsInvalidErrorWithCause("deliveries",
			fmt.Errorf("%d is negative", deliveries))
	}
	c.deliveries = deliveries
	return nil
}
