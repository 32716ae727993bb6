package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrCollectDeliveryCommandIsNotConstructed = errors.New(
	"CollectDeliveryCommand must be created via NewCollectDeliveryCommand constructor",
)

// CollectDeliveryCommand records the courier picking the order up at the
// restaurant. Only the assigned courier may collect, and only after
// accepting the offer.
type CollectDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	courierID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewCollectDeliveryCommand creates a command for a courier collecting an order.
func NewCollectDeliveryCommand(deliveryID, courierID kernel.UUID) (CollectDeliveryCommand, error) {
	cmd := CollectDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setCourierID(courierID),
	); err != nil {
		return CollectDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CollectDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCollectDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the delivery being collected.
func (c CollectDeliveryCommand) DeliveryID() kernel.UUID { return c.deliveryID }

// CourierID returns the collecting courier.
func (c CollectDeliveryCommand) CourierID() kernel.UUID { return c.courierID }

func (c *CollectDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *CollectDeliveryCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}
