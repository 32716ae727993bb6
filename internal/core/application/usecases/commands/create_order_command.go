package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderItem is one order line as submitted by the storefront.
type CreateOrderItem struct {
	Name      string
	Quantity  int
	UnitPrice string
}

// CreateOrderParams carries the raw order payload for NewCreateOrderCommand.
// Monetary amounts are decimal strings; coordinates are plain degrees. The
// drop-off coordinates are optional at creation time but required before the
// order can be dispatched.
type CreateOrderParams struct {
	OrderID      kernel.UUID
	RestaurantID kernel.UUID

	PickupLatitude  float64
	PickupLongitude float64

	Street           string
	Number           string
	Complement       string
	Neighborhood     string
	City             string
	PostalCode       string
	DropoffLatitude  *float64
	DropoffLongitude *float64

	Items         []CreateOrderItem
	PaymentMethod string

	Subtotal    string
	DeliveryFee string
	ServiceFee  string
	Discount    string

	// Tendered is the announced cash amount; nil means exact payment.
	Tendered *string
}

// CreateOrderCommand represents a request to register a new order in Pending
// status. All value conversion and validation happens here, so the handler
// works with already-valid domain values.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	restaurantID  kernel.UUID
	pickup        kernel.GeoPoint
	address       order.Address
	items         []order.Item
	paymentMethod order.PaymentMethod
	subtotal      kernel.Money
	deliveryFee   kernel.Money
	serviceFee    kernel.Money
	discount      kernel.Money
	tendered      *kernel.Money

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order,
// converting the raw payload into validated domain values.
func NewCreateOrderCommand(params CreateOrderParams) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setIDs(params.OrderID, params.RestaurantID),
		cmd.setPickup(params.PickupLatitude, params.PickupLongitude),
		cmd.setAddress(params),
		cmd.setItems(params.Items),
		cmd.setPaymentMethod(params.PaymentMethod),
		cmd.setAmounts(params),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID { return c.orderID }

// RestaurantID returns the originating restaurant reference.
func (c CreateOrderCommand) RestaurantID() kernel.UUID { return c.restaurantID }

// Pickup returns the restaurant coordinates.
func (c CreateOrderCommand) Pickup() kernel.GeoPoint { return c.pickup }

// Address returns the delivery destination.
func (c CreateOrderCommand) Address() order.Address { return c.address }

// Items returns the validated order lines.
func (c CreateOrderCommand) Items() []order.Item { return c.items }

// PaymentMethod returns the chosen payment method.
func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod { return c.paymentMethod }

// Subtotal returns the sum of line item prices.
func (c CreateOrderCommand) Subtotal() kernel.Money { return c.subtotal }

// DeliveryFee returns the delivery fee charged to the customer.
func (c CreateOrderCommand) DeliveryFee() kernel.Money { return c.deliveryFee }

// ServiceFee returns the platform service fee.
func (c CreateOrderCommand) ServiceFee() kernel.Money { return c.serviceFee }

// Discount returns the discount applied to the order.
func (c CreateOrderCommand) Discount() kernel.Money { return c.discount }

// Tendered returns the announced cash amount, nil for exact payment.
func (c CreateOrderCommand) Tendered() *kernel.Money { return c.tendered }

func (c *CreateOrderCommand) setIDs(orderID, restaurantID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if err := restaurantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("restaurant id", err)
	}

	c.orderID = orderID
	c.restaurantID = restaurantID
	return nil
}

func (c *CreateOrderCommand) setPickup(lat, lon float64) error {
	pickup, err := kernel.NewGeoPoint(lat, lon)
	if err != nil {
		return err
	}

	c.pickup = pickup
	return nil
}

func (c *CreateOrderCommand) setAddress(params CreateOrderParams) error {
	var dropoff *kernel.GeoPoint
	if params.DropoffLatitude != nil && params.DropoffLongitude != nil {
		point, err := kernel.NewGeoPoint(*params.DropoffLatitude, *params.DropoffLongitude)
		if err != nil {
			return err
		}
		dropoff = &point
	}

	address, err := order.NewAddress(
		params.Street, params.Number, params.Complement,
		params.Neighborhood, params.City, params.PostalCode,
		dropoff,
	)
	if err != nil {
		return err
	}

	c.address = address
	return nil
}

func (c *CreateOrderCommand) setItems(items []CreateOrderItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("order items")
	}

	c.items = make([]order.Item, 0, len(items))
	for _, raw := range items {
		price, err := kernel.NewMoneyFromString(raw.UnitPrice)
		if err != nil {
			return err
		}

		item, err := order.NewItem(raw.Name, raw.Quantity, price)
		if err != nil {
			return err
		}

		c.items = append(c.items, item)
	}

	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(method string) error {
	parsed, err := order.PaymentMethodFromString(method)
	if err != nil {
		return err
	}

	c.paymentMethod = parsed
	return nil
}

func (c *CreateOrderCommand) setAmounts(params CreateOrderParams) error {
	var err error
	if c.subtotal, err = kernel.NewMoneyFromString(params.Subtotal); err != nil {
		return err
	}
	if c.deliveryFee, err = kernel.NewMoneyFromString(params.DeliveryFee); err != nil {
		return err
	}
	if c.serviceFee, err = kernel.NewMoneyFromString(params.ServiceFee); err != nil {
		return err
	}
	if c.discount, err = kernel.NewMoneyFromString(params.Discount); err != nil {
		return err
	}

	if params.Tendered != nil {
		tendered, err := kernel.NewMoneyFromString(*params.Tendered)
		if err != nil {
			return err
		}
		c.tendered = &tendered
	}

	return nil
}
