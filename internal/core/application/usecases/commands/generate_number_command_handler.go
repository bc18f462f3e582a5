package commands

import (
	"context"
	"time"
)

// GenerateNumberCommandHandler handles the business logic for number generation.
// Reads the counter under a row lock, rolls the fiscal year when due, increments
// and formats the number, all inside one transaction. Because the lock is held
// until commit, two concurrent calls for the same (tenant, type) can never see
// the same counter value and the issued numbers stay gap free.
type GenerateNumberCommandHandler struct {
	uowFactory SequenceUoWFactory
}

// NewGenerateNumberCommandHandler creates a handler for number generation.
// Requires a SequenceUoWFactory for transactional persistence.
func NewGenerateNumberCommandHandler(uowFactory SequenceUoWFactory) GenerateNumberCommandHandler {
	return GenerateNumberCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the number generation command and returns the formatted
// number. A number that was handed out is committed before it is returned, so
// callers never observe a number that later disappears.
func (h *GenerateNumberCommandHandler) Handle(ctx context.Context, cmd GenerateNumberCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	sequenceRepo := uow.SequenceRepository()
	counter, err := sequenceRepo.GetForUpdate(ctx, cmd.TenantID(), cmd.SequenceType())
	if err != nil {
		return "", err
	}

	number, err := counter.Next(time.Now())
	if err != nil {
		return "", err
	}

	if err = sequenceRepo.Update(ctx, counter); err != nil {
		return "", err
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	return number, nil
}
