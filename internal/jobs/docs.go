// Package jobs provides scheduled background tasks for the fulfillment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the order workflow.
//
// # Available Jobs
//
// 1. TaskBackfillJob - Periodically repairs order items whose workflow task
// set is incomplete, e.g. after a stage was added to the catalog.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(db, createItemTasksHandler, schedule, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The backfill schedule is a cron expression with a seconds field and comes
// from configuration, e.g. "0 * * * * *" for once per minute. Task generation
// is idempotent, so overlapping or repeated runs are safe.
//
// # Error Handling
//
//   - A failing item is logged and skipped; the rest of the batch still runs.
//   - Failed job starts stop any already running jobs.
package jobs
