// Package export renders report views to CSV and XLSX documents.
// Amounts are rounded here, at presentation time, never upstream.
package export

import (
	"github.com/shopspring/decimal"

	"github.com/fuelflow/ledger/internal/domain/shared/valueobject"
)

// dateLayout is the date format used in exported cells.
const dateLayout = "2006-01-02"

// Exporter renders report views with amounts stamped in one display currency.
type Exporter struct {
	currency valueobject.Currency
}

// New creates an Exporter for the given display currency.
// An empty currency falls back to the default.
func New(currency valueobject.Currency) Exporter {
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}
	return Exporter{currency: currency}
}

// Currency returns the display currency documents are stamped with.
func (e Exporter) Currency() valueobject.Currency {
	return e.currency
}

// amount renders a bare decimal for a table cell, rounded to cents.
func (e Exporter) amount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// money renders a decimal with the currency code, for summary rows.
func (e Exporter) money(d decimal.Decimal) string {
	// currency is normalized in New, NewMoney cannot fail here
	m, err := valueobject.NewMoney(d, e.currency)
	if err != nil {
		return d.StringFixed(2)
	}
	return m.String()
}
