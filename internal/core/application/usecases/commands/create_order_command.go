package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrItemsAreRequired = errors.New("at least one item is required")
)

// ItemSpec describes one garment line of a new order.
type ItemSpec struct {
	Description string
	Quantity    int
}

// CreateOrderCommand represents a request to take in a new garment order with
// its line items. The order number is drawn from the tenant's order counter
// inside the same transaction, and every item gets its workflow task set.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(tenantID, orderID,
//	    []ItemSpec{{Description: "silk saree blouse", Quantity: 2}},
//	    decimal.NewFromInt(3500))
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	number, err := handler.Handle(ctx, cmd)
//	// number is e.g. "ORD-2025-2600042"
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	tenantID    kernel.UUID
	orderID     kernel.UUID
	items       []ItemSpec
	totalAmount decimal.Decimal

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Item level validation happens in the order aggregate; here only the shape
// of the request is checked.
func NewCreateOrderCommand(
	tenantID kernel.UUID,
	orderID kernel.UUID,
	items []ItemSpec,
	totalAmount decimal.Decimal,
) (CreateOrderCommand, error) {
	command := CreateOrderCommand{
		totalAmount: totalAmount,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setTenantID(tenantID),
		command.setOrderID(orderID),
		command.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// TenantID returns the tenant the order is taken in for.
func (c CreateOrderCommand) TenantID() kernel.UUID {
	return c.tenantID
}

// OrderID returns the client supplied identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Items returns the garment lines of the new order.
func (c CreateOrderCommand) Items() []ItemSpec {
	return c.items
}

// TotalAmount returns the order's monetary total.
func (c CreateOrderCommand) TotalAmount() decimal.Decimal {
	return c.totalAmount
}

func (c *CreateOrderCommand) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}

	c.tenantID = tenantID
	return nil
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setItems(items []ItemSpec) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	c.items = items
	return nil
}
