// Package report contains the derived read models the back-office screens
// render: filtered activity views, account statements, aging reports and
// price history. Everything here is computed on demand from ledger events
// and open items; nothing is persisted.
package report
