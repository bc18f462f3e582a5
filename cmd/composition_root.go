package cmd

import (
	"log/slog"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/sequencerepo"
	"fulfillment/internal/adapters/out/postgres/stagerepo"
	"fulfillment/internal/adapters/out/postgres/taskrepo"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB, config.SequenceLockTimeout),
	}
}

// MigrateDatabase creates or updates the schema for every persisted structure.
func MigrateDatabase(db *gorm.DB) error {
	return db.AutoMigrate(
		&sequencerepo.CounterDTO{},
		&stagerepo.StageDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&taskrepo.TaskDTO{},
	)
}

func (c *CompositionRoot) CreateGenerateNumberCommandHandler() commands.GenerateNumberCommandHandler {
	var f commands.SequenceUoWFactory = FuncSequenceUoWFactory(func() commands.SequenceUoW {
		return c.uowFactory.Create()
	})
	return commands.NewGenerateNumberCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.IntakeUoWFactory = FuncIntakeUoWFactory(func() commands.IntakeUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateConfirmOrderCommandHandler() commands.ConfirmOrderCommandHandler {
	var f commands.WorkflowUoWFactory = FuncWorkflowUoWFactory(func() commands.WorkflowUoW {
		return c.uowFactory.Create()
	})
	return commands.NewConfirmOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateItemTasksCommandHandler() commands.CreateItemTasksCommandHandler {
	var f commands.TaskUoWFactory = FuncTaskUoWFactory(func() commands.TaskUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateItemTasksCommandHandler(f)
}

func (c *CompositionRoot) CreateTransitionTaskCommandHandler() commands.TransitionTaskCommandHandler {
	var f commands.WorkflowUoWFactory = FuncWorkflowUoWFactory(func() commands.WorkflowUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionTaskCommandHandler(f)
}

func (c *CompositionRoot) CreateAssignTaskCommandHandler() commands.AssignTaskCommandHandler {
	var f commands.WorkflowUoWFactory = FuncWorkflowUoWFactory(func() commands.WorkflowUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignTaskCommandHandler(f)
}

func (c *CompositionRoot) CreateGetBoardQueryHandler() queries.GetBoardQueryHandler {
	return queries.NewGetBoardQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager(config Config, logger *slog.Logger) *jobs.JobManager {
	return jobs.NewJobManager(
		c.gormDB,
		c.CreateCreateItemTasksCommandHandler(),
		config.BackfillSchedule,
		logger,
	)
}

type FuncSequenceUoWFactory func() commands.SequenceUoW

func (f FuncSequenceUoWFactory) Create() commands.SequenceUoW {
	return f()
}

type FuncIntakeUoWFactory func() commands.IntakeUoW

func (f FuncIntakeUoWFactory) Create() commands.IntakeUoW {
	return f()
}

type FuncTaskUoWFactory func() commands.TaskUoW

func (f FuncTaskUoWFactory) Create() commands.TaskUoW {
	return f()
}

type FuncWorkflowUoWFactory func() commands.WorkflowUoW

func (f FuncWorkflowUoWFactory) Create() commands.WorkflowUoW {
	return f()
}
