package order

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrNumberIsRequired is returned when an order is created without its
	// sequence-issued number.
	ErrNumberIsRequired = errors.New("order number is required")

	// ErrTotalAmountIsNegative is returned when an order total is below zero.
	ErrTotalAmountIsNegative = errors.New("order total amount must not be negative")
)

// Order represents a garment order in the system. It is the aggregate root
// that manages the order lifecycle from capture through production to delivery.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and tenant
//   - Carries the externally visible number issued by the sequence counter;
//     the number is assigned at creation and never changes
//   - Total amount is never negative
//   - Status transitions follow the defined business workflow
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// tenantID scopes the order to one tenant
	tenantID kernel.UUID

	// number is the sequence-issued external identifier, e.g. "ORD-2025-2600042"
	number string

	// status represents the current state in the order lifecycle
	status Status

	// totalAmount is the order's monetary total; tax arithmetic lives outside
	// this core
	totalAmount decimal.Decimal

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order in Draft status.
//
// The number must already have been issued by the sequence generator for this
// tenant; orders never invent their own identifiers.
func NewOrder(id kernel.UUID, tenantID kernel.UUID, number string, totalAmount decimal.Decimal) (*Order, error) {
	order := &Order{
		status:        Draft,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setTenantID(tenantID),
		order.setNumber(number),
		order.setTotalAmount(totalAmount),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order from persistence, revalidating invariants.
func RestoreOrder(
	id kernel.UUID,
	tenantID kernel.UUID,
	number string,
	status Status,
	totalAmount decimal.Decimal,
) (*Order, error) {
	order := &Order{
		isConstructed: true,
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}
	order.status = status

	if err := errors.Join(
		order.setID(id),
		order.setTenantID(tenantID),
		order.setNumber(number),
		order.setTotalAmount(totalAmount),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// TenantID returns the tenant the order belongs to.
func (o *Order) TenantID() kernel.UUID {
	return o.tenantID
}

// Number returns the sequence-issued external identifier.
func (o *Order) Number() string {
	return o.number
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// TotalAmount returns the order's monetary total.
func (o *Order) TotalAmount() decimal.Decimal {
	return o.totalAmount
}

// Confirm moves the order from Draft to Confirmed.
// Confirmation is the trigger for the first-stage auto-completion performed
// by the workflow orchestration.
func (o *Order) Confirm() error {
	newStatus, err := o.status.Confirm()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// StartProduction moves the order from Confirmed to InProduction.
func (o *Order) StartProduction() error {
	newStatus, err := o.status.StartProduction()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// MarkReady moves the order to Ready. Called by the workflow orchestration
// when the last outstanding task of the order reaches a terminal state; never
// set by direct user edits.
func (o *Order) MarkReady() error {
	newStatus, err := o.status.MarkReady()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// MarkDelivered moves the order from Ready to Delivered.
func (o *Order) MarkDelivered() error {
	newStatus, err := o.status.MarkDelivered()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// Cancel abandons the order from any non-final status.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	o.tenantID = tenantID
	return nil
}

func (o *Order) setNumber(number string) error {
	if number == "" {
		return ErrNumberIsRequired
	}
	o.number = number
	return nil
}

func (o *Order) setTotalAmount(totalAmount decimal.Decimal) error {
	if totalAmount.IsNegative() {
		return ErrTotalAmountIsNegative
	}
	o.totalAmount = totalAmount
	return nil
}
