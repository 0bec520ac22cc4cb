package ledger

import (
	"github.com/shopspring/decimal"
)

// Snapshot is the balance immediately after applying one event.
type Snapshot struct {
	Event   Event           `json:"event"`
	Balance decimal.Decimal `json:"balance"`
}

// RunningBalance folds events into per-event balance snapshots:
//
//	balance[i] = balance[i-1] + amount[i]
//
// with balance[-1] = opening. The caller supplies events already in
// chronological order (SortChronological); events with identical timestamps
// keep their input order. The fold never rounds: balances accumulate at full
// decimal precision and are rounded only when rendered.
//
// An empty event list yields an empty snapshot list; the balance is then the
// opening balance by definition.
func RunningBalance(events []Event, opening decimal.Decimal) []Snapshot {
	snapshots := make([]Snapshot, 0, len(events))
	balance := opening
	for _, event := range events {
		balance = balance.Add(event.Amount)
		snapshots = append(snapshots, Snapshot{
			Event:   event,
			Balance: balance,
		})
	}
	return snapshots
}

// ClosingBalance returns the balance after the last snapshot, or the opening
// balance when there are none.
func ClosingBalance(snapshots []Snapshot, opening decimal.Decimal) decimal.Decimal {
	if len(snapshots) == 0 {
		return opening
	}
	return snapshots[len(snapshots)-1].Balance
}

// SumAmounts returns the sum of the signed amounts of the given events.
func SumAmounts(events []Event) decimal.Decimal {
	total := decimal.Zero
	for _, event := range events {
		total = total.Add(event.Amount)
	}
	return total
}
