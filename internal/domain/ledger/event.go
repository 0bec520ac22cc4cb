package ledger

import (
	"sort"
	"strings"
	"time"

	"github.com/fuelflow/ledger/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// EventKind classifies a ledger event and fixes the sign of its amount.
type EventKind string

const (
	EventKindSale        EventKind = "sale"         // fuel or shop sale, increases the balance owed
	EventKindPayment     EventKind = "payment"      // settlement received or made, decreases the balance
	EventKindCredit      EventKind = "credit"       // credit note / return, decreases the balance
	EventKindAdjustment  EventKind = "adjustment"   // manual correction, sign taken from the source record
	EventKindPriceChange EventKind = "price-change" // unit price delta for a product ledger
	EventKindExpense     EventKind = "expense"      // operating expense, increases the balance owed
)

// IsValid checks if the kind is a known EventKind
func (k EventKind) IsValid() bool {
	switch k {
	case EventKindSale, EventKindPayment, EventKindCredit,
		EventKindAdjustment, EventKindPriceChange, EventKindExpense:
		return true
	}
	return false
}

// String returns the string representation of the EventKind
func (k EventKind) String() string {
	return string(k)
}

// Label returns the display label used on report rows and export headers
func (k EventKind) Label() string {
	switch k {
	case EventKindSale:
		return "Sale"
	case EventKindPayment:
		return "Payment"
	case EventKindCredit:
		return "Credit"
	case EventKindAdjustment:
		return "Adjustment"
	case EventKindPriceChange:
		return "Price Change"
	case EventKindExpense:
		return "Expense"
	default:
		return string(k)
	}
}

// IsCharge returns true for kinds that increase the balance owed
func (k EventKind) IsCharge() bool {
	return k == EventKindSale || k == EventKindExpense
}

// IsSettlement returns true for kinds that decrease the balance owed
func (k EventKind) IsSettlement() bool {
	return k == EventKindPayment || k == EventKindCredit
}

// SignedAmount applies the sign convention of the kind to a source amount.
// Charges are forced positive and settlements negative regardless of how the
// source record stored them; adjustments and price changes keep the source
// sign because it carries meaning (a correction or a price drop can go either
// way).
func (k EventKind) SignedAmount(amount decimal.Decimal) decimal.Decimal {
	switch {
	case k.IsCharge():
		return amount.Abs()
	case k.IsSettlement():
		return amount.Abs().Neg()
	default:
		return amount
	}
}

// ParseEventKind converts a string into an EventKind, case-insensitively.
func ParseEventKind(s string) (EventKind, error) {
	k := EventKind(strings.ToLower(strings.TrimSpace(s)))
	if !k.IsValid() {
		return "", shared.ErrUnknownEventKind
	}
	return k, nil
}

// Event is a single timestamped financial occurrence on an entity's ledger.
// Events are derived from source records by Normalize and are never persisted.
type Event struct {
	EntityID    string          `json:"entity_id"`
	EntityName  string          `json:"entity_name,omitempty"`
	Timestamp   time.Time       `json:"timestamp"`
	Kind        EventKind       `json:"kind"`
	Amount      decimal.Decimal `json:"amount"` // signed per the kind's convention
	ReferenceID string          `json:"reference_id"`
	Description string          `json:"description,omitempty"`

	// Seq is the insertion order across the normalized batch. It breaks
	// timestamp ties so that repeated sorts of the same data stay stable.
	Seq int `json:"seq"`
}

// NewEvent creates a ledger event, applying the kind's sign convention.
func NewEvent(entityID string, timestamp time.Time, kind EventKind, amount decimal.Decimal, referenceID string) (Event, error) {
	if !kind.IsValid() {
		return Event{}, shared.ErrUnknownEventKind
	}
	if timestamp.IsZero() {
		return Event{}, shared.ErrInvalidInput
	}
	return Event{
		EntityID:    entityID,
		Timestamp:   timestamp,
		Kind:        kind,
		Amount:      kind.SignedAmount(amount),
		ReferenceID: referenceID,
	}, nil
}

// SortChronological sorts events in place, ascending by timestamp with ties
// kept in insertion (Seq) order. The sort is deterministic: two calls over
// the same events yield the same order.
func SortChronological(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Timestamp.Equal(events[j].Timestamp) {
			return events[i].Seq < events[j].Seq
		}
		return events[i].Timestamp.Before(events[j].Timestamp)
	})
}

// Merge concatenates event batches from different sources into a single
// slice, renumbering Seq in batch order so a later chronological sort keeps
// a stable tie-break across the whole set.
func Merge(batches ...[]Event) []Event {
	total := 0
	for _, b := range batches {
		total += len(b)
	}
	merged := make([]Event, 0, total)
	for _, b := range batches {
		merged = append(merged, b...)
	}
	for i := range merged {
		merged[i].Seq = i
	}
	return merged
}
