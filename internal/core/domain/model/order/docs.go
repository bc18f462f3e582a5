// Package order provides domain entities and business logic for garment order
// management in the fulfillment system. It implements the Order aggregate root
// with lifecycle management and state transitions, and the Item entity whose
// current-stage pointer tracks progress through the production pipeline.
//
// The package includes:
//   - Order: The aggregate root carrying the externally visible order number,
//     business status, and monetary total
//   - Status: A state machine that enforces valid order status transitions
//   - Item: An order line whose current-stage pointer is mutated exclusively
//     by the workflow advancement logic, never by direct user edits
//
// Key business rules:
//   - Orders must have a valid unique identifier, tenant, and number
//   - Order status follows a defined workflow:
//     Draft -> Confirmed -> InProduction -> Ready -> Delivered
//   - Cancellation is possible from any non-terminal status
//   - The Ready transition is driven by task completion propagation: it fires
//     when the last outstanding task of the order reaches a terminal state
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
