package export

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fuelflow/ledger/internal/domain/ledger"
	"github.com/fuelflow/ledger/internal/domain/report"
)

// statementRows lays out an account statement: metadata rows, one row per
// statement line, then the closing figures. CSV and XLSX render the same rows.
func (e Exporter) statementRows(stmt report.AccountStatement) [][]string {
	rows := [][]string{
		{"Account", accountLabel(stmt.EntityName, stmt.EntityID)},
		{"Period", periodLabel(stmt.From, stmt.To)},
		{"Currency", string(e.currency)},
		{"Opening Balance", e.amount(stmt.Opening)},
		{"Date", "Kind", "Reference", "Description", "Debit", "Credit", "Balance"},
	}

	for _, line := range stmt.Lines {
		debit, credit := "", ""
		if line.Amount.IsNegative() {
			credit = e.amount(line.Amount.Abs())
		} else {
			debit = e.amount(line.Amount)
		}
		rows = append(rows, []string{
			line.Date.Format(dateLayout),
			line.Kind.Label(),
			line.Reference,
			line.Description,
			debit,
			credit,
			e.amount(line.Balance),
		})
	}

	rows = append(rows,
		[]string{"Total Debits", e.amount(stmt.TotalDebits)},
		[]string{"Total Credits", e.amount(stmt.TotalCredits)},
		[]string{"Closing Balance", e.money(stmt.Closing)},
	)
	return rows
}

// agingRows lays out an aging report: one row per entity with a column per
// bucket, then the grand-total row.
func (e Exporter) agingRows(rpt report.AgingReport) [][]string {
	header := append([]string{"Entity", "Entity ID"}, rpt.Labels...)
	header = append(header, "Total")

	rows := [][]string{
		{"As Of", rpt.AsOf.Format(dateLayout)},
		{"Currency", string(e.currency)},
		header,
	}

	for _, row := range rpt.Rows {
		record := []string{row.EntityName, row.EntityID}
		for _, bucket := range row.Buckets {
			record = append(record, e.amount(bucket.Amount))
		}
		record = append(record, e.amount(row.Total))
		rows = append(rows, record)
	}

	total := []string{"Total", ""}
	for _, bucket := range rpt.Totals {
		total = append(total, e.amount(bucket.Amount))
	}
	total = append(total, e.amount(rpt.GrandTotal))
	return append(rows, total)
}

// activityRows lays out a filtered event list with its summary.
func (e Exporter) activityRows(events []ledger.Event, summary report.Summary) [][]string {
	rows := [][]string{
		{"Date", "Kind", "Entity", "Reference", "Description", "Amount"},
	}

	for _, event := range events {
		rows = append(rows, []string{
			event.Timestamp.Format(dateLayout),
			event.Kind.Label(),
			entityLabel(event.EntityName, event.EntityID),
			event.ReferenceID,
			event.Description,
			e.amount(event.Amount),
		})
	}

	rows = append(rows, []string{"Count", fmt.Sprint(summary.Count)})
	for _, kind := range sortedKinds(summary.ByKind) {
		rows = append(rows, []string{kind.Label(), e.amount(summary.ByKind[kind])})
	}
	return append(rows, []string{"Total", e.money(summary.Total)})
}

// priceHistoryRows lays out a product price history.
func (e Exporter) priceHistoryRows(history report.PriceHistory) [][]string {
	rows := [][]string{
		{"Product", accountLabel(history.ProductName, history.ProductID)},
		{"Currency", string(e.currency)},
		{"List Price", e.amount(history.ListPrice)},
		{"Date", "Reference", "Description", "Change", "Price"},
	}

	for _, change := range history.Changes {
		rows = append(rows, []string{
			change.Date.Format(dateLayout),
			change.Reference,
			change.Description,
			e.amount(change.Delta),
			e.amount(change.Price),
		})
	}

	return append(rows,
		[]string{"Net Change", e.amount(history.NetChange)},
		[]string{"Latest Price", e.money(history.LatestPrice)},
	)
}

func accountLabel(name, id string) string {
	switch {
	case name == "":
		return id
	case id == "":
		return name
	default:
		return fmt.Sprintf("%s (%s)", name, id)
	}
}

func entityLabel(name, id string) string {
	if name != "" {
		return name
	}
	return id
}

func periodLabel(from, to *time.Time) string {
	switch {
	case from == nil && to == nil:
		return "all"
	case from == nil:
		return "until " + to.Format(dateLayout)
	case to == nil:
		return "from " + from.Format(dateLayout)
	default:
		return from.Format(dateLayout) + " to " + to.Format(dateLayout)
	}
}

func sortedKinds(byKind map[ledger.EventKind]decimal.Decimal) []ledger.EventKind {
	kinds := make([]ledger.EventKind, 0, len(byKind))
	for kind := range byKind {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
