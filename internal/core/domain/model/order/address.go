package order

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when using an Address that bypassed NewAddress.
var ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress constructor")

// Address is a structured delivery destination. Coordinates are optional:
// an address may be captured before geocoding, but when coordinates are
// present they are a validated GeoPoint, so latitude and longitude always
// come together and within range. Dispatch requires coordinates.
type Address struct { //nolint:recvcheck //using for validation
	street       string
	number       string
	complement   string
	neighborhood string
	city         string
	postalCode   string
	location     *kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewAddress creates a delivery address.
// Street and city are required; complement and coordinates are optional.
func NewAddress(
	street, number, complement, neighborhood, city, postalCode string,
	location *kernel.GeoPoint,
) (Address, error) {
	address := Address{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		address.setStreet(street),
		address.setCity(city),
		address.setLocation(location),
	); err != nil {
		return Address{}, err
	}

	address.number = number
	address.complement = complement
	address.neighborhood = neighborhood
	address.postalCode = postalCode
	return address, nil
}

// Validate checks the address was created through the constructor.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// Street returns the street name.
func (a Address) Street() string { return a.street }

// Number returns the street number.
func (a Address) Number() string { return a.number }

// Complement returns the free-form address complement (apartment, floor).
func (a Address) Complement() string { return a.complement }

// Neighborhood returns the neighborhood name.
func (a Address) Neighborhood() string { return a.neighborhood }

// City returns the city name.
func (a Address) City() string { return a.city }

// PostalCode returns the postal code.
func (a Address) PostalCode() string { return a.postalCode }

// Location returns the geocoded coordinates, or nil if the address has not
// been geocoded yet.
func (a Address) Location() *kernel.GeoPoint {
	return a.location
}

func (a *Address) setStreet(street string) error {
	if street == "" {
		return errs.NewValueIsRequiredError("street")
	}
	a.street = street
	return nil
}

func (a *Address) setCity(city string) error {
	if city == "" {
		return errs.NewValueIsRequiredError("city")
	}
	a.city = city
	return nil
}

func (a *Address) setLocation(location *kernel.GeoPoint) error {
	if location == nil {
		return nil
	}
	if err := location.Validate(); err != nil {
		return err
	}

	point := *location
	a.location = &point
	return nil
}
