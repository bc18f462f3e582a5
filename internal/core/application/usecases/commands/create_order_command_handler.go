package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/sequence"
)

// CreateOrderCommandHandler handles order intake. In a single transaction it
// draws the next order number from the tenant's counter, stores the order in
// Draft status with its line items, and generates each item's workflow task
// set. Because the counter row stays locked until commit, an intake that rolls
// back never leaves a hole in the issued numbers.
type CreateOrderCommandHandler struct {
	uowFactory IntakeUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order intake.
// Requires an IntakeUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory IntakeUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the intake command and returns the issued order number.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (string, error) {
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
	counter, err := sequenceRepo.GetForUpdate(ctx, cmd.TenantID(), sequence.OrderNumber)
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

	orderRepo := uow.OrderRepository()
	o, err := order.NewOrder(cmd.OrderID(), cmd.TenantID(), number, cmd.TotalAmount())
	if err != nil {
		return "", err
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		return "", err
	}

	for _, spec := range cmd.Items() {
		item, err := order.NewItem(kernel.NewUUID(), cmd.TenantID(), cmd.OrderID(), spec.Description, spec.Quantity)
		if err != nil {
			return "", err
		}

		if err = orderRepo.AddItem(ctx, item); err != nil {
			return "", err
		}

		if _, err = generateTasksForItem(ctx, uow, item, nil); err != nil {
			return "", err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	return number, nil
}
