package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrApproveCourierCommandIsNotConstructed = errors.New(
	"ApproveCourierCommand must be created via NewApproveCourierCommand constructor",
)

// ApproveCourierCommand marks a courier as having passed onboarding,
// making them a candidate for dispatch once they report availability and a
// position.
type ApproveCourierCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewApproveCourierCommand creates a command to approve a courier.
func NewApproveCourierCommand(courierID kernel.UUID) (ApproveCourierCommand, error) {
	cmd := ApproveCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setCourierID(courierID); err != nil {
		return ApproveCourierCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApproveCourierCommand) Validate() error {
	return c.guard.Validate(ErrApproveCourierCommandIsNotConstructed)
}

// CourierID returns the courier to approve.
func (c ApproveCourierCommand) CourierID() kernel.UUID { return c.courierID }

func (c *ApproveCourierCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}
