// Package taskrepo provides data transfer objects and mapping functions for
// workflow task persistence. A partial unique index on (order_item_id,
// stage_id) backs the one-task-per-item-and-stage rule at the storage level.
package taskrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/task"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// TaskDTO represents the database structure for persisting workflow tasks.
type TaskDTO struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TenantID          uuid.UUID  `gorm:"type:uuid;index"`
	OrderID           uuid.UUID  `gorm:"type:uuid;index"`
	OrderItemID       *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_task_item_stage"`
	StageID           uuid.UUID  `gorm:"type:uuid;uniqueIndex:idx_task_item_stage"`
	Status            int        `gorm:"index"`
	AssigneeKind      int
	AssigneeID        *uuid.UUID `gorm:"type:uuid;index"`
	DueDate           *time.Time
	StartedAt         *time.Time
	CompletedAt       *time.Time
	Photos            pq.StringArray `gorm:"type:text[]"`
	PhotoVerified     bool
	RequiresApproval  bool
	IsApproved        bool
	ApprovedBy        *uuid.UUID `gorm:"type:uuid"`
	CompletedBy       *uuid.UUID `gorm:"type:uuid"`
	CompletedBySystem bool
	Notes             string
}

// TableName specifies the database table name for tasks.
func (TaskDTO) TableName() string {
	return "tasks"
}

func fromDomain(t *task.Task) TaskDTO {
	dto := TaskDTO{
		ID:                t.ID().Bytes(),
		TenantID:          t.TenantID().Bytes(),
		OrderID:           t.OrderID().Bytes(),
		StageID:           t.StageID().Bytes(),
		Status:            int(t.Status()),
		AssigneeKind:      int(t.Assignee().Kind()),
		DueDate:           t.DueDate(),
		StartedAt:         t.StartedAt(),
		CompletedAt:       t.CompletedAt(),
		Photos:            pq.StringArray(t.Photos()),
		PhotoVerified:     t.PhotoVerified(),
		RequiresApproval:  t.RequiresApproval(),
		IsApproved:        t.IsApproved(),
		CompletedBySystem: t.CompletedBySystem(),
		Notes:             t.Notes(),
	}

	if itemID := t.OrderItemID(); itemID != nil {
		raw := itemID.Bytes()
		dto.OrderItemID = &raw
	}

	if userID, ok := t.Assignee().UserID(); ok {
		raw := userID.Bytes()
		dto.AssigneeID = &raw
	}
	if workerID, ok := t.Assignee().WorkerID(); ok {
		raw := workerID.Bytes()
		dto.AssigneeID = &raw
	}

	if approvedBy := t.ApprovedBy(); approvedBy != nil {
		raw := approvedBy.Bytes()
		dto.ApprovedBy = &raw
	}
	if completedBy := t.CompletedBy(); completedBy != nil {
		raw := completedBy.Bytes()
		dto.CompletedBy = &raw
	}

	return dto
}

func toDomain(dto TaskDTO) (*task.Task, error) {
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

	stageID, err := kernel.UUIDFromBytes(dto.StageID[:])
	if err != nil {
		return nil, err
	}

	snapshot := task.Snapshot{
		ID:                id,
		TenantID:          tenantID,
		OrderID:           orderID,
		StageID:           stageID,
		Status:            task.Status(dto.Status),
		DueDate:           dto.DueDate,
		StartedAt:         dto.StartedAt,
		CompletedAt:       dto.CompletedAt,
		Photos:            []string(dto.Photos),
		PhotoVerified:     dto.PhotoVerified,
		RequiresApproval:  dto.RequiresApproval,
		IsApproved:        dto.IsApproved,
		CompletedBySystem: dto.CompletedBySystem,
		Notes:             dto.Notes,
	}

	if dto.OrderItemID != nil {
		itemID, itemErr := kernel.UUIDFromBytes((*dto.OrderItemID)[:])
		if itemErr != nil {
			return nil, itemErr
		}
		snapshot.OrderItemID = &itemID
	}

	assignee, err := restoreAssignee(dto)
	if err != nil {
		return nil, err
	}
	snapshot.Assignee = assignee

	if dto.ApprovedBy != nil {
		approvedBy, approvedErr := kernel.UUIDFromBytes((*dto.ApprovedBy)[:])
		if approvedErr != nil {
			return nil, approvedErr
		}
		snapshot.ApprovedBy = &approvedBy
	}

	if dto.CompletedBy != nil {
		completedBy, completedErr := kernel.UUIDFromBytes((*dto.CompletedBy)[:])
		if completedErr != nil {
			return nil, completedErr
		}
		snapshot.CompletedBy = &completedBy
	}

	return task.RestoreTask(snapshot)
}

func restoreAssignee(dto TaskDTO) (task.Assignee, error) {
	if dto.AssigneeID == nil {
		return task.NoAssignee(), nil
	}

	id, err := kernel.UUIDFromBytes((*dto.AssigneeID)[:])
	if err != nil {
		return task.Assignee{}, err
	}

	switch task.AssigneeKind(dto.AssigneeKind) {
	case task.AssignedToUser:
		return task.AssignToUser(id)
	case task.AssignedToWorker:
		return task.AssignToWorker(id)
	default:
		return task.NoAssignee(), nil
	}
}
