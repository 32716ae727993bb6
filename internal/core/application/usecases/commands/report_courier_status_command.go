package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrReportCourierStatusCommandIsNotConstructed = errors.New(
	"ReportCourierStatusCommand must be created via NewReportCourierStatusCommand constructor",
)

// ReportCourierStatusCommand is the courier's shift heartbeat: current
// position plus whether the courier is taking deliveries. Going off shift
// through this command is not the same as being claimed; the claim flip is
// reserved for dispatch.
type ReportCourierStatusCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	location  kernel.GeoPoint
	available bool

	guard guard.ConstructorGuard
}

// NewReportCourierStatusCommand creates a command carrying a courier's
// position report and availability.
func NewReportCourierStatusCommand(
	courierID kernel.UUID,
	latitude, longitude float64,
	available bool,
) (ReportCourierStatusCommand, error) {
	cmd := ReportCourierStatusCommand{
		available: available,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCourierID(courierID),
		cmd.setLocation(latitude, longitude),
	); err != nil {
		return ReportCourierStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportCourierStatusCommand) Validate() error {
	return c.guard.Validate(ErrReportCourierStatusCommandIsNotConstructed)
}

// CourierID returns the reporting courier.
func (c ReportCourierStatusCommand) CourierID() kernel.UUID { return c.courierID }

// Location returns the reported position.
func (c ReportCourierStatusCommand) Location() kernel.GeoPoint { return c.location }

// Available reports whether the courier is taking deliveries.
func (c ReportCourierStatusCommand) Available() bool { return c.available }

func (c *ReportCourierStatusCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}

func (c *ReportCourierStatusCommand) setLocation(latitude, longitude float64) error {
	location, err := kernel.NewGeoPoint(latitude, longitude)
	if err != nil {
		return err
	}

	c.location = location
	return nil
}
