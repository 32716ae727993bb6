package services

import (
	"errors"
	"math"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// ErrNoCourierAvailable is returned when no eligible courier exists for a
// ready order. This is not a failure of the order: the order stays ready and
// dispatch is retried on a schedule.
var ErrNoCourierAvailable = errors.New("no courier available")

// Dispatcher is the domain service that matches a ready order to the nearest
// eligible courier and produces the resulting delivery offer.
//
// Selection rules:
//   - Only eligible couriers are considered: approved, available, and with a
//     known position.
//   - The courier with the minimum distance to the order's pickup location
//     wins; ties break deterministically to the lowest courier ID.
//   - The winner is claimed (availability flipped to false) before the
//     delivery is created, so a courier can never hold two offers.
//
// The service is pure over its inputs: it mutates the passed aggregates but
// performs no I/O. Persisting the claim atomically is the caller's job; the
// repository re-runs the availability flip as a compare-and-set so two
// concurrent dispatches racing for the same courier cannot both win.
type Dispatcher struct {
	payoutTariff Tariff
}

// NewDispatcher creates a Dispatcher pricing courier payouts with the given
// tariff.
func NewDispatcher(payoutTariff Tariff) Dispatcher {
	return Dispatcher{payoutTariff: payoutTariff}
}

// Dispatch selects the nearest eligible courier for the order, claims it,
// assigns it to the order, and returns the delivery offer to persist.
//
// The order must be ready and unassigned. The order's address must carry
// drop-off coordinates; the delivery distance and payout are computed from
// pickup to drop-off. Fails with ErrNoCourierAvailable when the pool holds
// no eligible courier.
func (d Dispatcher) Dispatch(
	o *order.Order,
	deliveryID kernel.UUID,
	couriers []*courier.Courier,
) (*delivery.Delivery, *courier.Courier, error) {
	if err := o.Validate(); err != nil {
		return nil, nil, err
	}

	dropoff := o.Address().Location()
	if dropoff == nil {
		return nil, nil, errs.NewValueIsRequiredError("drop-off location")
	}

	best, err := d.findNearestCourier(o.PickupLocation(), couriers)
	if err != nil {
		return nil, nil, err
	}

	tripKm, err := o.PickupLocation().DistanceTo(*dropoff)
	if err != nil {
		return nil, nil, err
	}

	payout, err := d.payoutTariff.Amount(tripKm)
	if err != nil {
		return nil, nil, err
	}

	if err = best.Claim(); err != nil {
		return nil, nil, err
	}

	if err = o.AssignCourier(best.ID()); err != nil {
		return nil, nil, err
	}

	offer, err := delivery.NewDelivery(
		deliveryID, o.ID(), best.ID(),
		o.PickupLocation(), *dropoff, tripKm, payout,
	)
	if err != nil {
		return nil, nil, err
	}

	return offer, best, nil
}

// findNearestCourier scans the pool for the eligible courier closest to the
// pickup point. The tie-break on courier ID keeps selection deterministic
// when two couriers report the exact same distance.
func (d Dispatcher) findNearestCourier(
	pickup kernel.GeoPoint,
	couriers []*courier.Courier,
) (*courier.Courier, error) {
	var (
		best     *courier.Courier
		bestDist = math.MaxFloat64
	)

	for _, c := range couriers {
		if err := c.Validate(); err != nil {
			return nil, err
		}

		if !c.IsEligible() {
			continue
		}

		dist, err := c.DistanceTo(pickup)
		if err != nil {
			return nil, err
		}

		if dist < bestDist || (dist == bestDist && best != nil && c.ID().String() < best.ID().String()) {
			bestDist = dist
			best = c
		}
	}

	if best == nil {
		return nil, ErrNoCourierAvailable
	}

	return best, nil
}
