package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/task"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetBoardQueryHandler builds the board projection straight from the database.
// The projection joins tasks to their stage column, order number and item
// description, bypassing the aggregates entirely.
type GetBoardQueryHandler struct {
	db *gorm.DB
}

// NewGetBoardQueryHandler creates a handler for board queries.
// Requires a GORM database connection for query execution.
func NewGetBoardQueryHandler(db *gorm.DB) GetBoardQueryHandler {
	return GetBoardQueryHandler{db: db}
}

// Handle executes the board query. Every active stage appears as a column even
// when it holds no tasks, in pipeline order; tasks within a column are sorted
// by due date with undated tasks last.
func (h GetBoardQueryHandler) Handle(ctx context.Context, query GetBoardQuery) ([]BoardColumn, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			s.id,
			s.name,
			s.code,
			s.stage_order,
			t.id,
			t.order_id,
			o.number,
			t.order_item_id,
			oi.description,
			t.status,
			t.assignee_kind,
			t.assignee_id
		FROM stages s
		LEFT JOIN tasks t
			ON t.stage_id = s.id
			AND t.tenant_id = s.tenant_id`
	args := []any{}

	if !query.IncludeCompleted() {
		sql += `
			AND t.status NOT IN (?, ?)`
		args = append(args, int(task.Completed), int(task.Skipped))
	}
	if query.AssigneeID() != nil {
		sql += `
			AND t.assignee_id = ?`
		args = append(args, query.AssigneeID().String())
	}
	if query.OrderID() != nil {
		sql += `
			AND t.order_id = ?`
		args = append(args, query.OrderID().String())
	}

	sql += `
		LEFT JOIN orders o ON o.id = t.order_id
		LEFT JOIN order_items oi ON oi.id = t.order_item_id
		WHERE s.tenant_id = ? AND s.is_active
		ORDER BY s.stage_order, t.due_date NULLS LAST, t.id`
	args = append(args, query.TenantID().String())

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns := make([]BoardColumn, 0)
	columnIndex := map[kernel.UUID]int{}

	for rows.Next() {
		var (
			stageID    uuid.UUID
			stageName  string
			stageCode  string
			stageOrder int

			taskID       *uuid.UUID
			orderID      *uuid.UUID
			orderNumber  *string
			orderItemID  *uuid.UUID
			itemDesc     *string
			status       *int
			assigneeKind *int
			assigneeID   *uuid.UUID
		)

		err = rows.Scan(
			&stageID, &stageName, &stageCode, &stageOrder,
			&taskID, &orderID, &orderNumber, &orderItemID, &itemDesc,
			&status, &assigneeKind, &assigneeID,
		)
		if err != nil {
			return nil, err
		}

		columnStageID, idErr := kernel.UUIDFromBytes(stageID[:])
		if idErr != nil {
			return nil, idErr
		}

		idx, ok := columnIndex[columnStageID]
		if !ok {
			columns = append(columns, BoardColumn{
				StageID:    columnStageID,
				StageName:  stageName,
				StageCode:  stageCode,
				StageOrder: stageOrder,
				Tasks:      []BoardTask{},
			})
			idx = len(columns) - 1
			columnIndex[columnStageID] = idx
		}

		// Empty columns surface as a single row with NULL task fields.
		if taskID == nil {
			continue
		}

		card, cardErr := buildCard(*taskID, *orderID, orderNumber, orderItemID, itemDesc, *status, assigneeKind, assigneeID)
		if cardErr != nil {
			return nil, cardErr
		}
		columns[idx].Tasks = append(columns[idx].Tasks, card)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return columns, nil
}

func buildCard(
	taskID uuid.UUID,
	orderID uuid.UUID,
	orderNumber *string,
	orderItemID *uuid.UUID,
	itemDesc *string,
	status int,
	assigneeKind *int,
	assigneeID *uuid.UUID,
) (BoardTask, error) {
	card := BoardTask{
		Status: task.Status(status),
	}

	id, err := kernel.UUIDFromBytes(taskID[:])
	if err != nil {
		return BoardTask{}, err
	}
	card.ID = id

	cardOrderID, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return BoardTask{}, err
	}
	card.OrderID = cardOrderID

	if orderNumber != nil {
		card.OrderNumber = *orderNumber
	}
	if itemDesc != nil {
		card.ItemDescription = *itemDesc
	}

	if orderItemID != nil {
		itemID, err := kernel.UUIDFromBytes(orderItemID[:])
		if err != nil {
			return BoardTask{}, err
		}
		card.OrderItemID = &itemID
	}

	if assigneeKind != nil {
		card.AssigneeKind = task.AssigneeKind(*assigneeKind)
	}
	if assigneeID != nil {
		id, err := kernel.UUIDFromBytes(assigneeID[:])
		if err != nil {
			return BoardTask{}, err
		}
		card.AssigneeID = &id
	}

	return card, nil
}
