package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/sequence"
	"fulfillment/internal/pkg/guard"
)

var ErrGenerateNumberCommandIsNotConstructed = errors.New(
	"GenerateNumberCommand must be created via NewGenerateNumberCommand constructor",
)

// GenerateNumberCommand represents a request to draw the next formatted number
// from a tenant's sequence counter.
//
// Example:
//
//	cmd, err := NewGenerateNumberCommand(tenantID, sequence.OrderNumber)
//	if err != nil {
//	    return fmt.Errorf("invalid request: %w", err)
//	}
//
//	handler := NewGenerateNumberCommandHandler(uowFactory)
//	number, err := handler.Handle(ctx, cmd)
//	// number is e.g. "ORD-2025-2600042"
type GenerateNumberCommand struct { //nolint:recvcheck //using for validation
	tenantID     kernel.UUID
	sequenceType sequence.SequenceType

	guard guard.ConstructorGuard
}

// NewGenerateNumberCommand creates a command to generate the next number for
// (tenant, sequence type). Validates both parts.
func NewGenerateNumberCommand(tenantID kernel.UUID, sequenceType sequence.SequenceType) (GenerateNumberCommand, error) {
	command := GenerateNumberCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setTenantID(tenantID),
		command.setSequenceType(sequenceType),
	); err != nil {
		return GenerateNumberCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c GenerateNumberCommand) Validate() error {
	return c.guard.Validate(ErrGenerateNumberCommandIsNotConstructed)
}

// TenantID returns the tenant whose counter is drawn from.
func (c GenerateNumberCommand) TenantID() kernel.UUID {
	return c.tenantID
}

// SequenceType returns the counter key within the tenant.
func (c GenerateNumberCommand) SequenceType() sequence.SequenceType {
	return c.sequenceType
}

func (c *GenerateNumberCommand) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}

	c.tenantID = tenantID
	return nil
}

func (c *GenerateNumberCommand) setSequenceType(sequenceType sequence.SequenceType) error {
	if err := sequenceType.Validate(); err != nil {
		return err
	}

	c.sequenceType = sequenceType
	return nil
}
