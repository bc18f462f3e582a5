// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations. Orders and their
// line items live in separate tables because items carry their own pipeline position.
package orderrepo

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID    uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_order_tenant_number"`
	Number      string          `gorm:"uniqueIndex:idx_order_tenant_number"`
	Status      int             `gorm:"index"`
	TotalAmount decimal.Decimal `gorm:"type:numeric"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents the database structure for persisting order line items.
// CurrentStageID is NULL before task generation and after the item leaves the
// pipeline.
type ItemDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID       uuid.UUID `gorm:"type:uuid;index"`
	OrderID        uuid.UUID `gorm:"type:uuid;index"`
	Description    string
	Quantity       int
	CurrentStageID *uuid.UUID `gorm:"type:uuid"`
}

// TableName specifies the database table name for order line items.
func (ItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	return OrderDTO{
		ID:          o.ID().Bytes(),
		TenantID:    o.TenantID().Bytes(),
		Number:      o.Number(),
		Status:      int(o.Status()),
		TotalAmount: o.TotalAmount(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, tenantID, dto.Number, order.Status(dto.Status), dto.TotalAmount)
}

func itemFromDomain(item *order.Item) ItemDTO {
	dto := ItemDTO{
		ID:          item.ID().Bytes(),
		TenantID:    item.TenantID().Bytes(),
		OrderID:     item.OrderID().Bytes(),
		Description: item.Description(),
		Quantity:    item.Quantity(),
	}

	if stageID := item.CurrentStageID(); stageID != nil {
		raw := stageID.Bytes()
		dto.CurrentStageID = &raw
	}

	return dto
}

func itemToDomain(dto ItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var currentStageID *kernel.UUID
	if dto.CurrentStageID != nil {
		stageID, stageErr := kernel.UUIDFromBytes((*dto.CurrentStageID)[:])
		if stageErr != nil {
			return nil, stageErr
		}
		currentStageID = &stageID
	}

	return order.RestoreItem(id, tenantID, orderID, dto.Description, dto.Quantity, currentStageID)
}
