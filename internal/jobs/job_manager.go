package jobs

import (
	"fmt"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"gorm.io/gorm"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	taskBackfillJob *TaskBackfillJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	db *gorm.DB,
	createItemTasksHandler commands.CreateItemTasksCommandHandler,
	backfillSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		taskBackfillJob: NewTaskBackfillJob(db, createItemTasksHandler, backfillSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.taskBackfillJob.Start(); err != nil {
		return fmt.Errorf("failed to start task backfill job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.taskBackfillJob.Stop()
}
