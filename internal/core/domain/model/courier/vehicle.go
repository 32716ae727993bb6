package courier

import (
	"fmt"
	"strings"

	"dispatch/internal/pkg/errs"
)

// Vehicle identifies the transport a courier uses.
type Vehicle int

const (
	// VehicleUnknown represents an invalid or undefined vehicle type.
	VehicleUnknown Vehicle = iota

	// VehicleBicycle is a bicycle courier.
	VehicleBicycle

	// VehicleMotorcycle is a motorcycle courier.
	VehicleMotorcycle

	// VehicleCar is a car courier.
	VehicleCar
)

func getVehicleStrings() map[Vehicle]string {
	return map[Vehicle]string{
		VehicleUnknown:    "Unknown",
		VehicleBicycle:    "Bicycle",
		VehicleMotorcycle: "Motorcycle",
		VehicleCar:        "Car",
	}
}

// VehicleFromString parses a vehicle type name, case-insensitively.
func VehicleFromString(s string) (Vehicle, error) {
	for vehicle, name := range getVehicleStrings() {
		if vehicle != VehicleUnknown && strings.EqualFold(name, s) {
			return vehicle, nil
		}
	}
	return VehicleUnknown, errs.NewValueIsInvalidErrorWithCause("vehicle",
		fmt.Errorf("%q is not a valid vehicle type", s))
}

// Validate checks the vehicle type is one of the supported values.
func (v Vehicle) Validate() error {
	if v == VehicleUnknown {
		return errs.NewValueIsInvalidErrorWithCause("vehicle",
			fmt.Errorf("%d is not a valid vehicle type", v))
	}
	if _, ok := getVehicleStrings()[v]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("vehicle",
			fmt.Errorf("%d is not a valid vehicle type", v))
	}
	return nil
}

// String returns the human-readable name of the vehicle type.
func (v Vehicle) String() string {
	if str, ok := getVehicleStrings()[v]; ok {
		return str
	}
	return "Unknown"
}
