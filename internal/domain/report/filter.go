package report

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fuelflow/ledger/internal/domain/ledger"
)

// TextField names an event field the text search can match against.
type TextField string

const (
	TextFieldName        TextField = "name"
	TextFieldReference   TextField = "reference"
	TextFieldDescription TextField = "description"
)

// FilterSpec is an immutable description of the current filter controls on a
// report screen. The zero value matches everything.
type FilterSpec struct {
	// Search is matched case-insensitively as a substring of the fields in
	// SearchIn. Empty matches all rows.
	Search string

	// SearchIn restricts which text fields Search looks at; empty means
	// name, reference and description.
	SearchIn []TextField

	// From and To bound the event timestamp, inclusive on both ends. Either
	// side may be nil for a one-sided range. From after To matches nothing.
	From *time.Time
	To   *time.Time

	// Kind keeps only events of one kind; empty keeps all kinds.
	Kind ledger.EventKind
}

// Summary aggregates a filtered event set for the totals bar of a screen.
type Summary struct {
	Count  int                                  `json:"count"`
	Total  decimal.Decimal                      `json:"total"`
	ByKind map[ledger.EventKind]decimal.Decimal `json:"by_kind"`
}

// Apply filters events by the spec and aggregates the survivors. The input
// slice is never mutated: the result is a fresh slice, so the caller can
// re-filter the same base data on every keystroke. An impossible date range
// (From after To) yields an empty result rather than an error.
func Apply(events []ledger.Event, spec FilterSpec) ([]ledger.Event, Summary) {
	summary := Summary{
		Total:  decimal.Zero,
		ByKind: make(map[ledger.EventKind]decimal.Decimal),
	}
	filtered := make([]ledger.Event, 0, len(events))

	if spec.From != nil && spec.To != nil && spec.From.After(*spec.To) {
		return filtered, summary
	}

	search := strings.ToLower(strings.TrimSpace(spec.Search))
	fields := spec.SearchIn
	if len(fields) == 0 {
		fields = []TextField{TextFieldName, TextFieldReference, TextFieldDescription}
	}

	for _, event := range events {
		if spec.Kind != "" && event.Kind != spec.Kind {
			continue
		}
		if spec.From != nil && event.Timestamp.Before(*spec.From) {
			continue
		}
		if spec.To != nil && event.Timestamp.After(*spec.To) {
			continue
		}
		if search != "" && !matchesText(event, search, fields) {
			continue
		}

		filtered = append(filtered, event)
		summary.Count++
		summary.Total = summary.Total.Add(event.Amount)
		summary.ByKind[event.Kind] = summary.ByKind[event.Kind].Add(event.Amount)
	}

	return filtered, summary
}

func matchesText(event ledger.Event, loweredSearch string, fields []TextField) bool {
	for _, field := range fields {
		var value string
		switch field {
		case TextFieldName:
			value = event.EntityName
		case TextFieldReference:
			value = event.ReferenceID
		case TextFieldDescription:
			value = event.Description
		}
		if value != "" && strings.Contains(strings.ToLower(value), loweredSearch) {
			return true
		}
	}
	return false
}

// EndOfDay widens a day-precision bound to the last instant of that day, so
// an inclusive To taken from a date picker covers the whole day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
