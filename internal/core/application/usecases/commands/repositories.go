// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// SequenceRepoFactory provides access to the sequence repository within a transaction.
	SequenceRepoFactory interface {
		SequenceRepository() ports.SequenceRepository
	}

	// StageRepoFactory provides access to the stage repository within a transaction.
	StageRepoFactory interface {
		StageRepository() ports.StageRepository
	}

	// TaskRepoFactory provides access to the task repository within a transaction.
	TaskRepoFactory interface {
		TaskRepository() ports.TaskRepository
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// SequenceUoW manages transactions for number generation. The counter row
	// lock taken inside lives exactly as long as this transaction.
	SequenceUoW interface {
		TxManager
		SequenceRepoFactory
	}

	// SequenceUoWFactory creates new sequence unit of work instances.
	SequenceUoWFactory interface {
		Create() SequenceUoW
	}

	// TaskUoW manages transactions for task generation. Task sets are derived
	// from the stage catalog and the order's items in one transaction.
	TaskUoW interface {
		TxManager
		StageRepoFactory
		TaskRepoFactory
		OrderRepoFactory
	}

	// TaskUoWFactory creates new task unit of work instances.
	TaskUoWFactory interface {
		Create() TaskUoW
	}

	// IntakeUoW manages transactions for order intake, which draws a number
	// from the sequence counter, stores the order with its items, and
	// generates each item's task set.
	IntakeUoW interface {
		TxManager
		SequenceRepoFactory
		StageRepoFactory
		TaskRepoFactory
		OrderRepoFactory
	}

	// IntakeUoWFactory creates new intake unit of work instances.
	IntakeUoWFactory interface {
		Create() IntakeUoW
	}

	// WorkflowUoW manages transactions for task transitions and confirmation
	// automation, which touch tasks, items and the order itself atomically.
	WorkflowUoW interface {
		TxManager
		StageRepoFactory
		TaskRepoFactory
		OrderRepoFactory
	}

	// WorkflowUoWFactory creates new workflow unit of work instances.
	WorkflowUoWFactory interface {
		Create() WorkflowUoW
	}
)
