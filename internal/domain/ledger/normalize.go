package ledger

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/fuelflow/ledger/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// dateLayouts are tried in order when a source date arrives as a string.
// The API emits RFC 3339; older rows and CSV-imported data use the plain
// date and day-first forms.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

// FieldMap names the candidate source fields, in priority order, for each
// normalized attribute. Each report page feeds records with its own field
// spellings; one map per source collapses those shapes into a single path.
type FieldMap struct {
	Date        []string
	Amount      []string
	Entity      []string
	Name        []string
	Reference   []string
	Description []string
}

// Validate checks that the map can produce a usable event.
// Date and Amount are mandatory: an event without either is meaningless.
func (f FieldMap) Validate() error {
	if len(f.Date) == 0 || len(f.Amount) == 0 {
		return shared.ErrEmptyFieldMap
	}
	return nil
}

// DefaultFieldMap covers the field spellings the collaborating API uses
// across its sales, payment, expense and price-history endpoints.
func DefaultFieldMap() FieldMap {
	return FieldMap{
		Date:        []string{"date", "createdAt", "created_at", "invoiceDate", "invoice_date"},
		Amount:      []string{"amount", "total", "totalAmount", "total_amount", "price"},
		Entity:      []string{"entityId", "entity_id", "customerId", "customer_id", "supplierId", "supplier_id", "productId", "product_id"},
		Name:        []string{"name", "customerName", "customer_name", "supplierName", "supplier_name", "productName", "product_name"},
		Reference:   []string{"referenceId", "reference_id", "invoiceNo", "invoice_no", "receiptNo", "receipt_no", "id"},
		Description: []string{"description", "notes", "remark", "memo"},
	}
}

// SkipReport counts source records excluded during normalization, by reason.
// Malformed records are skipped rather than failing the whole report; the
// counts surface in diagnostics so a bad import does not vanish silently.
type SkipReport struct {
	MissingDate   int `json:"missing_date"`
	BadDate       int `json:"bad_date"`
	MissingAmount int `json:"missing_amount"`
	BadAmount     int `json:"bad_amount"`
}

// Total returns the number of skipped records
func (r SkipReport) Total() int {
	return r.MissingDate + r.BadDate + r.MissingAmount + r.BadAmount
}

// IsZero returns true if nothing was skipped
func (r SkipReport) IsZero() bool {
	return r.Total() == 0
}

// Add returns the element-wise sum of two reports
func (r SkipReport) Add(other SkipReport) SkipReport {
	return SkipReport{
		MissingDate:   r.MissingDate + other.MissingDate,
		BadDate:       r.BadDate + other.BadDate,
		MissingAmount: r.MissingAmount + other.MissingAmount,
		BadAmount:     r.BadAmount + other.BadAmount,
	}
}

// Normalize converts heterogeneous source records into ledger events of the
// given kind. Records with a missing or unparseable date or amount are
// excluded and counted in the SkipReport; nothing short of an unusable field
// map fails the call. The transform is pure: the input records are never
// mutated and an empty input yields an empty, zero-skip result.
func Normalize(records []map[string]any, kind EventKind, fields FieldMap) ([]Event, SkipReport, error) {
	if !kind.IsValid() {
		return nil, SkipReport{}, shared.ErrUnknownEventKind
	}
	if err := fields.Validate(); err != nil {
		return nil, SkipReport{}, err
	}

	events := make([]Event, 0, len(records))
	var report SkipReport

	for _, record := range records {
		rawDate, ok := lookup(record, fields.Date)
		if !ok {
			report.MissingDate++
			continue
		}
		timestamp, ok := parseDate(rawDate)
		if !ok {
			report.BadDate++
			continue
		}

		rawAmount, ok := lookup(record, fields.Amount)
		if !ok {
			report.MissingAmount++
			continue
		}
		amount, ok := parseAmount(rawAmount)
		if !ok {
			report.BadAmount++
			continue
		}

		events = append(events, Event{
			EntityID:    lookupString(record, fields.Entity),
			EntityName:  lookupString(record, fields.Name),
			Timestamp:   timestamp,
			Kind:        kind,
			Amount:      kind.SignedAmount(amount),
			ReferenceID: lookupString(record, fields.Reference),
			Description: lookupString(record, fields.Description),
			Seq:         len(events),
		})
	}

	return events, report, nil
}

// NormalizeOutstanding converts open-item rows (unpaid invoices, open
// supplier bills) into OutstandingItems for aging. Skip semantics match
// Normalize: the origin date and amount are mandatory, bad records are
// counted, never fatal.
func NormalizeOutstanding(records []map[string]any, fields FieldMap) ([]OutstandingItem, SkipReport, error) {
	if err := fields.Validate(); err != nil {
		return nil, SkipReport{}, err
	}

	items := make([]OutstandingItem, 0, len(records))
	var report SkipReport

	for _, record := range records {
		rawDate, ok := lookup(record, fields.Date)
		if !ok {
			report.MissingDate++
			continue
		}
		origin, ok := parseDate(rawDate)
		if !ok {
			report.BadDate++
			continue
		}

		rawAmount, ok := lookup(record, fields.Amount)
		if !ok {
			report.MissingAmount++
			continue
		}
		amount, ok := parseAmount(rawAmount)
		if !ok {
			report.BadAmount++
			continue
		}

		items = append(items, OutstandingItem{
			EntityID:   lookupString(record, fields.Entity),
			EntityName: lookupString(record, fields.Name),
			Reference:  lookupString(record, fields.Reference),
			Amount:     amount,
			OriginDate: origin,
		})
	}

	return items, report, nil
}

// lookup returns the first candidate field present in the record with a
// non-nil value.
func lookup(record map[string]any, candidates []string) (any, bool) {
	for _, key := range candidates {
		if v, ok := record[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// lookupString is lookup for free-text fields; non-string values are
// stringified only when they already carry text meaning.
func lookupString(record map[string]any, candidates []string) string {
	v, ok := lookup(record, candidates)
	if !ok {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case json.Number:
		return s.String()
	case float64:
		return decimal.NewFromFloat(s).String()
	case int:
		return decimal.NewFromInt(int64(s)).String()
	case int64:
		return decimal.NewFromInt(s).String()
	default:
		return ""
	}
}

// parseAmount accepts the numeric shapes the API and its JSON decoding
// produce: float64, json.Number, integer types, decimal, or a numeric string.
func parseAmount(v any) (decimal.Decimal, bool) {
	switch a := v.(type) {
	case decimal.Decimal:
		return a, true
	case float64:
		return decimal.NewFromFloat(a), true
	case int:
		return decimal.NewFromInt(int64(a)), true
	case int64:
		return decimal.NewFromInt(a), true
	case json.Number:
		d, err := decimal.NewFromString(a.String())
		if err != nil {
			return decimal.Decimal{}, false
		}
		return d, true
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(a))
		if err != nil {
			return decimal.Decimal{}, false
		}
		return d, true
	default:
		return decimal.Decimal{}, false
	}
}

// parseDate accepts time.Time values directly and tries the known layouts
// for strings.
func parseDate(v any) (time.Time, bool) {
	switch d := v.(type) {
	case time.Time:
		if d.IsZero() {
			return time.Time{}, false
		}
		return d, true
	case string:
		s := strings.TrimSpace(d)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}
