package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateCourierCommandIsNotConstructed = errors.New(
		"CreateCourierCommand must be created via NewCreateCourierCommand constructor",
	)
	ErrNameIsRequired = errors.New("name is required")
)

// CreateCourierCommand represents a request to register a new courier.
// New couriers start unapproved and unavailable; approval is a separate,
// operator-initiated command.
type CreateCourierCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	name      string
	vehicle   courier.Vehicle

	guard guard.ConstructorGuard
}

// NewCreateCourierCommand creates a command to register a new courier.
func NewCreateCourierCommand(courierID kernel.UUID, name, vehicle string) (CreateCourierCommand, error) {
	cmd := CreateCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCourierID(courierID),
		cmd.setName(name),
		cmd.setVehicle(vehicle),
	); err != nil {
		return CreateCourierCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateCourierCommand) Validate() error {
	return c.guard.Validate(ErrCreateCourierCommandIsNotConstructed)
}

// CourierID returns the unique identifier for the new courier.
func (c CreateCourierCommand) CourierID() kernel.UUID { return c.courierID }

// Name returns the courier's display name.
func (c CreateCourierCommand) Name() string { return c.name }

// Vehicle returns the parsed vehicle type.
func (c CreateCourierCommand) Vehicle() courier.Vehicle { return c.vehicle }

func (c *CreateCourierCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}

func (c *CreateCourierCommand) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}

	c.name = name
	return nil
}

func (c *CreateCourierCommand) setVehicle(vehicle string) error {
	parsed, err := courier.VehicleFromString(vehicle)
	if err != nil {
		return err
	}

	c.vehicle = parsed
	return nil
}
