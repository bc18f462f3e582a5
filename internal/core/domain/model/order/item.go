package order

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
)

var (
	// ErrItemIsNotConstructed is returned when an Item instance was not created
	// through the NewItem or RestoreItem factory methods.
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem constructor")

	// ErrDescriptionIsRequired is returned when an item has an empty description.
	ErrDescriptionIsRequired = errors.New("item description is required")

	// ErrQuantityIsNotPositive is returned when an item quantity is zero or negative.
	ErrQuantityIsNotPositive = errors.New("item quantity must be positive")
)

// Item is a single garment line within an order. Each item moves through the
// stage pipeline independently; currentStageID points at the stage the item
// is worked at right now and is nil until the first stage is entered.
type Item struct {
	id       kernel.UUID
	tenantID kernel.UUID
	orderID  kernel.UUID

	description string
	quantity    int

	currentStageID *kernel.UUID

	isConstructed bool
}

// NewItem creates a new order line. The item starts before the pipeline,
// with no current stage.
func NewItem(id kernel.UUID, tenantID kernel.UUID, orderID kernel.UUID, description string, quantity int) (*Item, error) {
	item := &Item{
		isConstructed: true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setTenantID(tenantID),
		item.setOrderID(orderID),
		item.setDescription(description),
		item.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreItem reconstructs an Item from persistence.
func RestoreItem(
	id kernel.UUID,
	tenantID kernel.UUID,
	orderID kernel.UUID,
	description string,
	quantity int,
	currentStageID *kernel.UUID,
) (*Item, error) {
	item, err := NewItem(id, tenantID, orderID, description, quantity)
	if err != nil {
		return nil, err
	}

	if currentStageID != nil {
		if err := currentStageID.Validate(); err != nil {
			return nil, err
		}
		stageID := *currentStageID
		item.currentStageID = &stageID
	}

	return item, nil
}

// Validate ensures the Item instance was properly constructed.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// IsEqual compares two items by their unique identifiers.
func (i *Item) IsEqual(other *Item) bool {
	return other != nil && i.id.IsEqual(other.id)
}

// ID returns the item's unique identifier.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// TenantID returns the tenant the item belongs to.
func (i *Item) TenantID() kernel.UUID {
	return i.tenantID
}

// OrderID returns the order the item belongs to.
func (i *Item) OrderID() kernel.UUID {
	return i.orderID
}

// Description returns the garment description of the item.
func (i *Item) Description() string {
	return i.description
}

// Quantity returns the number of pieces in the line.
func (i *Item) Quantity() int {
	return i.quantity
}

// CurrentStageID returns the stage the item is currently at, or nil when the
// item has not entered the pipeline yet.
func (i *Item) CurrentStageID() *kernel.UUID {
	return i.currentStageID
}

// AdvanceToStage moves the item's current-stage pointer. When the item's last
// stage closes the pointer keeps that final stage; a nil target clears the
// pointer for items that have not entered the pipeline.
func (i *Item) AdvanceToStage(stageID *kernel.UUID) error {
	if stageID == nil {
		i.currentStageID = nil
		return nil
	}

	if err := stageID.Validate(); err != nil {
		return err
	}
	next := *stageID
	i.currentStageID = &next
	return nil
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	i.tenantID = tenantID
	return nil
}

func (i *Item) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	i.orderID = orderID
	return nil
}

func (i *Item) setDescription(description string) error {
	if description == "" {
		return ErrDescriptionIsRequired
	}
	i.description = description
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrQuantityIsNotPositive
	}
	i.quantity = quantity
	return nil
}
