// Package ledger contains the running-balance and aging computations behind
// the back-office report screens (customer activity, receivables, payables,
// price history).
//
// The pipeline is: Normalize source records into Events, sort them
// chronologically, fold them into balance Snapshots, and bucket outstanding
// items by age. Every stage is a pure function over its inputs; nothing here
// performs I/O or holds state between calls, so a report recomputes from
// scratch on every filter change.
//
// All monetary amounts are decimal.Decimal. Rounding happens at presentation
// time only, never while accumulating.
package ledger
