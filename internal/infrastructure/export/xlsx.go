package export

import (
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/fuelflow/ledger/internal/domain/ledger"
	"github.com/fuelflow/ledger/internal/domain/report"
)

// StatementXLSX serialises an account statement to an XLSX workbook.
func (e Exporter) StatementXLSX(w io.Writer, stmt report.AccountStatement) error {
	return writeSheet(w, "Statement", e.statementRows(stmt))
}

// AgingXLSX serialises an aging report to an XLSX workbook.
func (e Exporter) AgingXLSX(w io.Writer, rpt report.AgingReport) error {
	return writeSheet(w, "Aging", e.agingRows(rpt))
}

// ActivityXLSX serialises a filtered event list with its summary to an
// XLSX workbook.
func (e Exporter) ActivityXLSX(w io.Writer, events []ledger.Event, summary report.Summary) error {
	return writeSheet(w, "Activity", e.activityRows(events, summary))
}

// PriceHistoryXLSX serialises a product price history to an XLSX workbook.
func (e Exporter) PriceHistoryXLSX(w io.Writer, history report.PriceHistory) error {
	return writeSheet(w, "Price History", e.priceHistoryRows(history))
}

func writeSheet(w io.Writer, sheet string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	return f.Write(w)
}
