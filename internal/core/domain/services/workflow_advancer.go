package services

import (
	"errors"

	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/core/domain/model/task"
)

var (
	// ErrTaskNotSettled is returned when advancement is requested for a task
	// that is still open. Only completed or skipped tasks move the item forward.
	ErrTaskNotSettled = errors.New("task is not settled")

	// ErrStageNotInPipeline is returned when a task references a stage that is
	// not part of the supplied stage catalog.
	ErrStageNotInPipeline = errors.New("stage is not part of the pipeline")

	// ErrNextTaskNotFound is returned when a next stage exists but the item has
	// no task for it. It points at an incomplete task set for the item.
	ErrNextTaskNotFound = errors.New("task for the next stage not found")
)

// Advancement is the outcome of moving an item past a settled task.
// When the settled task belonged to the last active stage, both stage and
// task are nil and the item stays pointed at that final stage.
type Advancement struct {
	// NextStage is the stage the item moves to, nil when the pipeline is done.
	NextStage *stage.Stage

	// NextTask is the item's task at NextStage, nil when the pipeline is done.
	NextTask *task.Task

	// CarriedAssignment reports whether NextTask was mutated by the assignment
	// carry-forward and needs to be persisted.
	CarriedAssignment bool
}

// WorkflowAdvancer is a domain service that decides where an order item goes
// after one of its tasks settles.
//
// Business rules:
//   - Only completed or skipped tasks advance the item
//   - The next stage is the closest active stage after the settled one;
//     inactive stages are passed over
//   - An assignee on the settled task carries forward to the next task when
//     the next task has no assignee of its own
//   - An order is done once every one of its tasks is settled
type WorkflowAdvancer struct{}

// NewWorkflowAdvancer creates a new WorkflowAdvancer instance.
func NewWorkflowAdvancer() WorkflowAdvancer {
	return WorkflowAdvancer{}
}

// Advance computes where the item behind the settled task goes next.
//
// stages must be the tenant's full ordered stage catalog and itemTasks the
// tasks of the settled task's item. When a next stage exists its task is
// returned with the assignment carried forward; the caller persists both the
// item's new stage pointer and the possibly updated next task.
func (w WorkflowAdvancer) Advance(settled *task.Task, stages []*stage.Stage, itemTasks []*task.Task) (Advancement, error) {
	if err := settled.Validate(); err != nil {
		return Advancement{}, err
	}
	if !settled.IsTerminal() {
		return Advancement{}, ErrTaskNotSettled
	}

	current := w.findStage(stages, settled)
	if current == nil {
		return Advancement{}, ErrStageNotInPipeline
	}

	next := stage.NextAfter(stages, current.StageOrder())
	if next == nil {
		return Advancement{}, nil
	}

	nextTask := w.findTask(itemTasks, next)
	if nextTask == nil {
		return Advancement{}, ErrNextTaskNotFound
	}

	carried := false
	if settled.Assignee().IsAssigned() && !nextTask.Assignee().IsAssigned() {
		if err := nextTask.Assign(settled.Assignee()); err != nil {
			return Advancement{}, err
		}
		carried = true
	}

	return Advancement{NextStage: next, NextTask: nextTask, CarriedAssignment: carried}, nil
}

// AllSettled reports whether every task of an order reached a terminal status.
// An order with no tasks at all is not settled.
func (w WorkflowAdvancer) AllSettled(tasks []*task.Task) bool {
	if len(tasks) == 0 {
		return false
	}
	for _, t := range tasks {
		if !t.IsTerminal() {
			return false
		}
	}
	return true
}

func (w WorkflowAdvancer) findStage(stages []*stage.Stage, t *task.Task) *stage.Stage {
	for _, s := range stages {
		if s.ID().IsEqual(t.StageID()) {
			return s
		}
	}
	return nil
}

func (w WorkflowAdvancer) findTask(tasks []*task.Task, s *stage.Stage) *task.Task {
	for _, t := range tasks {
		if t.StageID().IsEqual(s.ID()) {
			return t
		}
	}
	return nil
}
