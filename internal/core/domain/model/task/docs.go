// Package task models the per-(order item, stage) unit of work tracked through
// the production pipeline. Exactly one task exists per (item, stage) pair; a
// task moves pending -> in_progress -> completed/skipped, with blocked reachable
// while work is halted by an external dependency. Completed and skipped are
// terminal: tasks are never deleted and never resurrected, forming the audit
// trail of the order.
//
// Completion is gated by the owning stage's policy (photo, approval) and
// skipping a mandatory stage requires an elevated actor. The gating errors in
// this package carry the task id and stage name so callers can render
// actionable messages.
package task
