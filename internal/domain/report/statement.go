package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fuelflow/ledger/internal/domain/ledger"
)

// StatementLine is one row of an account statement: the event plus the
// balance after it.
type StatementLine struct {
	Date        time.Time        `json:"date"`
	Kind        ledger.EventKind `json:"kind"`
	Reference   string           `json:"reference"`
	Description string           `json:"description,omitempty"`
	Amount      decimal.Decimal  `json:"amount"`
	Balance     decimal.Decimal  `json:"balance"`
}

// AccountStatement is the customer-activity / supplier-ledger view: the
// entity's events inside a period with running balances, carried forward
// from everything before the period.
type AccountStatement struct {
	EntityID   string     `json:"entity_id"`
	EntityName string     `json:"entity_name,omitempty"`
	From       *time.Time `json:"from,omitempty"`
	To         *time.Time `json:"to,omitempty"`

	Opening decimal.Decimal `json:"opening"` // balance brought forward into the period
	Lines   []StatementLine `json:"lines"`
	Closing decimal.Decimal `json:"closing"`

	TotalDebits  decimal.Decimal                      `json:"total_debits"`  // sum of positive line amounts
	TotalCredits decimal.Decimal                      `json:"total_credits"` // sum of negative line amounts, as a positive figure
	NetChange    decimal.Decimal                      `json:"net_change"`    // Closing - Opening
	ByKind       map[ledger.EventKind]decimal.Decimal `json:"by_kind"`
}

// BuildStatement assembles the statement for one entity over a period.
//
// Events are filtered to the entity (all events when entityID is empty),
// sorted chronologically, and split at the period start: everything before
// From folds into the opening balance, everything inside [From, To] becomes
// a statement line. Events after To are ignored. An unknown entity simply
// produces an empty statement with Opening == Closing == opening.
func BuildStatement(entityID, entityName string, events []ledger.Event, opening decimal.Decimal, from, to *time.Time) AccountStatement {
	stmt := AccountStatement{
		EntityID:     entityID,
		EntityName:   entityName,
		From:         from,
		To:           to,
		Opening:      opening,
		Lines:        make([]StatementLine, 0, len(events)),
		TotalDebits:  decimal.Zero,
		TotalCredits: decimal.Zero,
		ByKind:       make(map[ledger.EventKind]decimal.Decimal),
	}

	scoped := make([]ledger.Event, 0, len(events))
	for _, event := range events {
		if entityID != "" && event.EntityID != entityID {
			continue
		}
		scoped = append(scoped, event)
	}
	ledger.SortChronological(scoped)

	balance := opening
	for _, event := range scoped {
		if from != nil && event.Timestamp.Before(*from) {
			// carried forward: the event predates the statement period
			balance = balance.Add(event.Amount)
			stmt.Opening = balance
			continue
		}
		if to != nil && event.Timestamp.After(*to) {
			continue
		}

		balance = balance.Add(event.Amount)
		stmt.Lines = append(stmt.Lines, StatementLine{
			Date:        event.Timestamp,
			Kind:        event.Kind,
			Reference:   event.ReferenceID,
			Description: event.Description,
			Amount:      event.Amount,
			Balance:     balance,
		})

		if event.Amount.IsNegative() {
			stmt.TotalCredits = stmt.TotalCredits.Add(event.Amount.Abs())
		} else {
			stmt.TotalDebits = stmt.TotalDebits.Add(event.Amount)
		}
		stmt.ByKind[event.Kind] = stmt.ByKind[event.Kind].Add(event.Amount)
	}

	if len(stmt.Lines) > 0 {
		stmt.Closing = stmt.Lines[len(stmt.Lines)-1].Balance
	} else {
		stmt.Closing = stmt.Opening
	}
	stmt.NetChange = stmt.Closing.Sub(stmt.Opening)

	return stmt
}
