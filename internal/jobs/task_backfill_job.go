package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// backfillBatchLimit caps how many items one run repairs, so a large backlog
// is worked off across runs instead of one long transaction-heavy sweep.
const backfillBatchLimit = 100

// TaskBackfillJob repairs order items whose task set is incomplete, for
// example when a stage was added to the catalog after the item's tasks were
// generated. Task generation is idempotent, so re-running it on a covered
// item is harmless.
type TaskBackfillJob struct {
	db       *gorm.DB
	handler  commands.CreateItemTasksCommandHandler
	cron     *cron.Cron
	schedule string
	logger   *slog.Logger
}

// NewTaskBackfillJob creates the backfill job. schedule is a cron expression
// with a seconds field, e.g. "0 * * * * *" for once a minute.
func NewTaskBackfillJob(
	db *gorm.DB,
	handler commands.CreateItemTasksCommandHandler,
	schedule string,
	logger *slog.Logger,
) *TaskBackfillJob {
	return &TaskBackfillJob{
		db:       db,
		handler:  handler,
		cron:     cron.New(cron.WithSeconds()),
		schedule: schedule,
		logger:   logger.With("component", "task_backfill_job"),
	}
}

// Start schedules the backfill runs.
func (j *TaskBackfillJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if err := j.run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Task backfill run failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Task backfill job started", "schedule", j.schedule)
	return nil
}

// Stop stops the backfill job.
func (j *TaskBackfillJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Task backfill job stopped")
}

type backfillCandidate struct {
	TenantID uuid.UUID
	ItemID   uuid.UUID
}

// run finds items of open orders that lack a task for some active stage and
// regenerates their task sets one item at a time. A failing item is logged
// and skipped; the rest of the batch still runs.
func (j *TaskBackfillJob) run(ctx context.Context) error {
	candidates, err := j.findCandidates(ctx)
	if err != nil {
		return err
	}

	if len(candidates) == 0 {
		return nil
	}

	j.logger.InfoContext(ctx, "Backfilling item task sets", "items", len(candidates))

	for _, candidate := range candidates {
		if err := j.backfillItem(ctx, candidate); err != nil {
			j.logger.ErrorContext(ctx, "Failed to backfill item",
				"item_id", candidate.ItemID, "error", err)
		}
	}

	return nil
}

func (j *TaskBackfillJob) findCandidates(ctx context.Context) ([]backfillCandidate, error) {
	var candidates []backfillCandidate

	err := j.db.WithContext(ctx).Raw(`
		SELECT oi.tenant_id AS tenant_id, oi.id AS item_id
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.status NOT IN (?, ?)
		AND EXISTS (
			SELECT 1 FROM stages s
			WHERE s.tenant_id = oi.tenant_id AND s.is_active
			AND NOT EXISTS (
				SELECT 1 FROM tasks t
				WHERE t.order_item_id = oi.id AND t.stage_id = s.id
			)
		)
		LIMIT ?`,
		int(order.Delivered), int(order.Cancelled), backfillBatchLimit,
	).Scan(&candidates).Error
	if err != nil {
		return nil, err
	}

	return candidates, nil
}

func (j *TaskBackfillJob) backfillItem(ctx context.Context, candidate backfillCandidate) error {
	tenantID, err := kernel.UUIDFromBytes(candidate.TenantID[:])
	if err != nil {
		return err
	}

	itemID, err := kernel.UUIDFromBytes(candidate.ItemID[:])
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateItemTasksCommand(tenantID, itemID, nil)
	if err != nil {
		return err
	}

	created, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		return err
	}

	if created > 0 {
		j.logger.InfoContext(ctx, "Backfilled tasks for item",
			"item_id", candidate.ItemID, "created", created)
	}

	return nil
}
