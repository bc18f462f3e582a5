package task

import (
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// AssigneeKind discriminates the Assignee union.
type AssigneeKind int

const (
	// Unassigned means the task has no assignee.
	Unassigned AssigneeKind = iota

	// AssignedToUser means an in-house user owns the task.
	AssignedToUser

	// AssignedToWorker means an external piece-rate worker owns the task.
	AssignedToWorker
)

// String returns the wire name of the kind. Implements fmt.Stringer.
func (k AssigneeKind) String() string {
	switch k {
	case Unassigned:
		return "unassigned"
	case AssignedToUser:
		return "user"
	case AssignedToWorker:
		return "worker"
	}
	return "unknown"
}

// Assignee is a tagged union expressing who owns a task: nobody, a user, or a
// worker, never both at once. Modelling the worker-XOR-user exclusivity as a
// variant type makes the invariant explicit instead of hiding it in two
// nullable foreign keys.
//
// The zero value is Unassigned and valid.
type Assignee struct {
	kind AssigneeKind
	id   kernel.UUID
}

// NoAssignee returns the Unassigned variant.
func NoAssignee() Assignee {
	return Assignee{kind: Unassigned}
}

// AssignToUser creates the user variant. The id must be valid.
func AssignToUser(userID kernel.UUID) (Assignee, error) {
	if err := userID.Validate(); err != nil {
		return Assignee{}, err
	}
	return Assignee{kind: AssignedToUser, id: userID}, nil
}

// AssignToWorker creates the worker variant. The id must be valid.
func AssignToWorker(workerID kernel.UUID) (Assignee, error) {
	if err := workerID.Validate(); err != nil {
		return Assignee{}, err
	}
	return Assignee{kind: AssignedToWorker, id: workerID}, nil
}

// Kind returns the union discriminant.
func (a Assignee) Kind() AssigneeKind {
	return a.kind
}

// IsAssigned reports whether anyone owns the task.
func (a Assignee) IsAssigned() bool {
	return a.kind != Unassigned
}

// UserID returns the assigned user's id; the second return is false unless the
// assignee is the user variant.
func (a Assignee) UserID() (kernel.UUID, bool) {
	if a.kind != AssignedToUser {
		return kernel.UUID{}, false
	}
	return a.id, true
}

// WorkerID returns the assigned worker's id; the second return is false unless
// the assignee is the worker variant.
func (a Assignee) WorkerID() (kernel.UUID, bool) {
	if a.kind != AssignedToWorker {
		return kernel.UUID{}, false
	}
	return a.id, true
}

// Validate checks internal consistency of the union.
func (a Assignee) Validate() error {
	switch a.kind {
	case Unassigned:
		return nil
	case AssignedToUser, AssignedToWorker:
		return a.id.Validate()
	}
	return errs.NewValueIsInvalidErrorWithCause("assignee is invalid",
		fmt.Errorf("%d is not a valid assignee kind", a.kind))
}
