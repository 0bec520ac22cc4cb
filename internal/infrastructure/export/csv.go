package export

import (
	"encoding/csv"
	"io"

	"github.com/fuelflow/ledger/internal/domain/ledger"
	"github.com/fuelflow/ledger/internal/domain/report"
)

// StatementCSV serialises an account statement to CSV.
func (e Exporter) StatementCSV(w io.Writer, stmt report.AccountStatement) error {
	return writeCSV(w, e.statementRows(stmt))
}

// AgingCSV serialises an aging report to CSV.
func (e Exporter) AgingCSV(w io.Writer, rpt report.AgingReport) error {
	return writeCSV(w, e.agingRows(rpt))
}

// ActivityCSV serialises a filtered event list with its summary to CSV.
func (e Exporter) ActivityCSV(w io.Writer, events []ledger.Event, summary report.Summary) error {
	return writeCSV(w, e.activityRows(events, summary))
}

// PriceHistoryCSV serialises a product price history to CSV.
func (e Exporter) PriceHistoryCSV(w io.Writer, history report.PriceHistory) error {
	return writeCSV(w, e.priceHistoryRows(history))
}

func writeCSV(w io.Writer, rows [][]string) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	for _, record := range rows {
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
