// Package sequence implements the per-tenant sequential numbering domain.
// Every externally visible identifier (order numbers, invoice numbers,
// inquiry/customer/worker codes, payment numbers) is drawn from a Counter
// aggregate keyed by (tenant, sequence type). Counters issue strictly
// increasing, gap-free numbers and optionally roll over on the Indian
// fiscal-year boundary (April through March).
//
// The package contains only pure domain logic; serializing concurrent callers
// on a counter is the responsibility of the persistence adapter, which must
// hold an exclusive row lock around read-increment-write.
package sequence
