package commands

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrExpireStaleOffersCommandIsNotConstructed = errors.New(
	"ExpireStaleOffersCommand must be created via NewExpireStaleOffersCommand constructor",
)

// ExpireStaleOffersCommand represents a request to cancel delivery offers
// that couriers never acknowledged, returning their orders to the dispatch
// pool and freeing the couriers.
type ExpireStaleOffersCommand struct { //nolint:recvcheck //using for validation
	maxOfferAge time.Duration

	guard guard.ConstructorGuard
}

// NewExpireStaleOffersCommand creates a command to expire offers older than
// maxOfferAge.
func NewExpireStaleOffersCommand(maxOfferAge time.Duration) (ExpireStaleOffersCommand, error) {
	cmd := ExpireStaleOffersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setMaxOfferAge(maxOfferAge); err != nil {
		return ExpireStaleOffersCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ExpireStaleOffersCommand) Validate() error {
	return c.guard.Validate(ErrExpireStaleOffersCommandIsNotConstructed)
}

// MaxOfferAge returns how long an offer may wait for acknowledgement.
func (c ExpireStaleOffersCommand) MaxOfferAge() time.Duration {
	return c.maxOfferAge
}

func (c *ExpireStaleOffersCommand) setMaxOfferAge(maxOfferAge time.Duration) error {
	if maxOfferAge <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("max offer age",
			fmt.Errorf("%s is not a positive duration", maxOfferAge))
	}
	c.maxOfferAge = maxOfferAge
	return nil
}
