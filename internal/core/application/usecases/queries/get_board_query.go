package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/task"
	"fulfillment/internal/pkg/guard"
)

var ErrGetBoardQueryIsNotConstructed = errors.New(
	"GetBoardQuery must be created via NewGetBoardQuery constructor",
)

// GetBoardQuery retrieves the kanban board projection for a tenant: one column
// per active stage in pipeline order, each holding the tasks currently sitting
// at that stage.
//
// Settled tasks are excluded unless includeCompleted is set. assigneeID and
// orderID narrow the board down to one person's work or one order.
//
// Example:
//
//	query, err := NewGetBoardQuery(tenantID, false, nil, nil)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewGetBoardQueryHandler(db)
//	board, err := handler.Handle(ctx, query)
type GetBoardQuery struct { //nolint:recvcheck //using for validation
	tenantID         kernel.UUID
	includeCompleted bool
	assigneeID       *kernel.UUID
	orderID          *kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetBoardQuery creates a query for a tenant's board. assigneeID and
// orderID are optional filters; nil means unfiltered.
func NewGetBoardQuery(
	tenantID kernel.UUID,
	includeCompleted bool,
	assigneeID *kernel.UUID,
	orderID *kernel.UUID,
) (GetBoardQuery, error) {
	query := GetBoardQuery{
		includeCompleted: includeCompleted,
		guard:            guard.NewConstructorGuard(),
	}

	if err := tenantID.Validate(); err != nil {
		return GetBoardQuery{}, err
	}
	query.tenantID = tenantID

	if assigneeID != nil {
		if err := assigneeID.Validate(); err != nil {
			return GetBoardQuery{}, err
		}
		id := *assigneeID
		query.assigneeID = &id
	}

	if orderID != nil {
		if err := orderID.Validate(); err != nil {
			return GetBoardQuery{}, err
		}
		id := *orderID
		query.orderID = &id
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetBoardQuery) Validate() error {
	return q.guard.Validate(ErrGetBoardQueryIsNotConstructed)
}

// TenantID returns the tenant whose board is projected.
func (q GetBoardQuery) TenantID() kernel.UUID {
	return q.tenantID
}

// IncludeCompleted reports whether settled tasks appear on the board.
func (q GetBoardQuery) IncludeCompleted() bool {
	return q.includeCompleted
}

// AssigneeID returns the optional assignee filter.
func (q GetBoardQuery) AssigneeID() *kernel.UUID {
	return q.assigneeID
}

// OrderID returns the optional order filter.
func (q GetBoardQuery) OrderID() *kernel.UUID {
	return q.orderID
}

// BoardTask is one card on the board.
type BoardTask struct {
	ID              kernel.UUID
	OrderID         kernel.UUID
	OrderNumber     string
	OrderItemID     *kernel.UUID
	ItemDescription string
	Status          task.Status
	AssigneeKind    task.AssigneeKind
	AssigneeID      *kernel.UUID
}

// BoardColumn is one stage column of the board, tasks included.
type BoardColumn struct {
	StageID    kernel.UUID
	StageName  string
	StageCode  string
	StageOrder int
	Tasks      []BoardTask
}
