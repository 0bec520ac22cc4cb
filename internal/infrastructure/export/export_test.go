package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/fuelflow/ledger/internal/domain/ledger"
	"github.com/fuelflow/ledger/internal/domain/report"
	"github.com/fuelflow/ledger/internal/domain/shared/valueobject"
)

func date(day int) time.Time {
	return time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC)
}

func testStatement() report.AccountStatement {
	events := []ledger.Event{
		{EntityID: "c1", EntityName: "ABC Transport", Timestamp: date(1), Kind: ledger.EventKindSale, Amount: decimal.RequireFromString("100"), ReferenceID: "INV-1", Seq: 0},
		{EntityID: "c1", EntityName: "ABC Transport", Timestamp: date(2), Kind: ledger.EventKindPayment, Amount: decimal.RequireFromString("-40"), ReferenceID: "PAY-1", Seq: 1},
	}
	return report.BuildStatement("c1", "ABC Transport", events, decimal.Zero, nil, nil)
}

func readCSV(t *testing.T, buf *bytes.Buffer) [][]string {
	t.Helper()
	reader := csv.NewReader(bytes.NewReader(buf.Bytes()))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)
	return records
}

func TestNew(t *testing.T) {
	t.Run("keeps given currency", func(t *testing.T) {
		e := New(valueobject.PKR)
		assert.Equal(t, valueobject.PKR, e.Currency())
	})

	t.Run("empty currency falls back to default", func(t *testing.T) {
		e := New("")
		assert.Equal(t, valueobject.DefaultCurrency, e.Currency())
	})
}

func TestStatementCSV(t *testing.T) {
	e := New(valueobject.PKR)
	buf := &bytes.Buffer{}

	require.NoError(t, e.StatementCSV(buf, testStatement()))
	records := readCSV(t, buf)

	require.Len(t, records, 10)
	assert.Equal(t, []string{"Account", "ABC Transport (c1)"}, records[0])
	assert.Equal(t, []string{"Period", "all"}, records[1])
	assert.Equal(t, []string{"Currency", "PKR"}, records[2])
	assert.Equal(t, []string{"Opening Balance", "0.00"}, records[3])
	assert.Equal(t, []string{"Date", "Kind", "Reference", "Description", "Debit", "Credit", "Balance"}, records[4])
	assert.Equal(t, []string{"2026-03-01", "Sale", "INV-1", "", "100.00", "", "100.00"}, records[5])
	assert.Equal(t, []string{"2026-03-02", "Payment", "PAY-1", "", "", "40.00", "60.00"}, records[6])
	assert.Equal(t, []string{"Closing Balance", "60.00 PKR"}, records[9])
}

func TestStatementCSVTotals(t *testing.T) {
	e := New(valueobject.PKR)
	buf := &bytes.Buffer{}

	require.NoError(t, e.StatementCSV(buf, testStatement()))
	records := readCSV(t, buf)

	assert.Contains(t, records, []string{"Total Debits", "100.00"})
	assert.Contains(t, records, []string{"Total Credits", "40.00"})
}

func TestAgingCSV(t *testing.T) {
	e := New(valueobject.PKR)
	asOf := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	items := []ledger.OutstandingItem{
		{EntityID: "c1", EntityName: "ABC Transport", Amount: decimal.RequireFromString("500"), OriginDate: asOf.AddDate(0, 0, -10)},
		{EntityID: "c2", EntityName: "XYZ Co", Amount: decimal.RequireFromString("300"), OriginDate: asOf.AddDate(0, 0, -45)},
	}
	rpt := report.BuildAgingReport(items, asOf, ledger.DefaultBucketSpec())

	buf := &bytes.Buffer{}
	require.NoError(t, e.AgingCSV(buf, rpt))
	records := readCSV(t, buf)

	require.Len(t, records, 6)
	assert.Equal(t, []string{"As Of", "2026-06-01"}, records[0])
	assert.Equal(t, []string{"Entity", "Entity ID", "current", "30-59", "60-89", "90+", "Total"}, records[2])
	assert.Equal(t, []string{"ABC Transport", "c1", "500.00", "0.00", "0.00", "0.00", "500.00"}, records[3])
	assert.Equal(t, []string{"XYZ Co", "c2", "0.00", "300.00", "0.00", "0.00", "300.00"}, records[4])
	assert.Equal(t, []string{"Total", "", "500.00", "300.00", "0.00", "0.00", "800.00"}, records[5])
}

func TestActivityCSV(t *testing.T) {
	e := New(valueobject.PKR)
	events := []ledger.Event{
		{EntityID: "c1", EntityName: "ABC Transport", Timestamp: date(1), Kind: ledger.EventKindSale, Amount: decimal.RequireFromString("100"), ReferenceID: "INV-1"},
		{EntityID: "c1", Timestamp: date(2), Kind: ledger.EventKindPayment, Amount: decimal.RequireFromString("-40"), ReferenceID: "PAY-1"},
	}
	summary := report.Summary{
		Count: 2,
		Total: decimal.RequireFromString("60"),
		ByKind: map[ledger.EventKind]decimal.Decimal{
			ledger.EventKindSale:    decimal.RequireFromString("100"),
			ledger.EventKindPayment: decimal.RequireFromString("-40"),
		},
	}

	buf := &bytes.Buffer{}
	require.NoError(t, e.ActivityCSV(buf, events, summary))
	records := readCSV(t, buf)

	require.Len(t, records, 7)
	assert.Equal(t, []string{"Date", "Kind", "Entity", "Reference", "Description", "Amount"}, records[0])
	assert.Equal(t, []string{"2026-03-01", "Sale", "ABC Transport", "INV-1", "", "100.00"}, records[1])
	assert.Equal(t, []string{"2026-03-02", "Payment", "c1", "PAY-1", "", "-40.00"}, records[2])
	assert.Equal(t, []string{"Count", "2"}, records[3])
	// kinds sorted lexically for stable output
	assert.Equal(t, []string{"Payment", "-40.00"}, records[4])
	assert.Equal(t, []string{"Sale", "100.00"}, records[5])
	assert.Equal(t, []string{"Total", "60.00 PKR"}, records[6])
}

func TestPriceHistoryCSV(t *testing.T) {
	e := New(valueobject.AED)
	events := []ledger.Event{
		{EntityID: "p1", Timestamp: date(1), Kind: ledger.EventKindPriceChange, Amount: decimal.RequireFromString("2.5"), ReferenceID: "PC-1"},
	}
	history := report.BuildPriceHistory("p1", "Hi-Speed Diesel", events, decimal.RequireFromString("272.89"))

	buf := &bytes.Buffer{}
	require.NoError(t, e.PriceHistoryCSV(buf, history))
	records := readCSV(t, buf)

	require.Len(t, records, 7)
	assert.Equal(t, []string{"Product", "Hi-Speed Diesel (p1)"}, records[0])
	assert.Equal(t, []string{"Currency", "AED"}, records[1])
	assert.Equal(t, []string{"List Price", "272.89"}, records[2])
	assert.Equal(t, []string{"2026-03-01", "PC-1", "", "2.50", "275.39"}, records[4])
	assert.Equal(t, []string{"Net Change", "2.50"}, records[5])
	assert.Equal(t, []string{"Latest Price", "275.39 AED"}, records[6])
}

func TestStatementXLSX(t *testing.T) {
	e := New(valueobject.PKR)
	buf := &bytes.Buffer{}

	require.NoError(t, e.StatementXLSX(buf, testStatement()))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.Contains(t, f.GetSheetList(), "Statement")

	account, err := f.GetCellValue("Statement", "B1")
	require.NoError(t, err)
	assert.Equal(t, "ABC Transport (c1)", account)

	debit, err := f.GetCellValue("Statement", "E6")
	require.NoError(t, err)
	assert.Equal(t, "100.00", debit)

	balance, err := f.GetCellValue("Statement", "G7")
	require.NoError(t, err)
	assert.Equal(t, "60.00", balance)
}

func TestAgingXLSX(t *testing.T) {
	e := New(valueobject.PKR)
	asOf := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	items := []ledger.OutstandingItem{
		{EntityID: "c1", EntityName: "ABC Transport", Amount: decimal.RequireFromString("500"), OriginDate: asOf.AddDate(0, 0, -95)},
	}
	rpt := report.BuildAgingReport(items, asOf, ledger.DefaultBucketSpec())

	buf := &bytes.Buffer{}
	require.NoError(t, e.AgingXLSX(buf, rpt))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Aging")
	require.NoError(t, err)
	require.Len(t, rows, 5)
	// 95 days old lands in the 90+ column
	assert.Equal(t, []string{"ABC Transport", "c1", "0.00", "0.00", "0.00", "500.00", "500.00"}, rows[3])
}

func TestActivityXLSX(t *testing.T) {
	e := New(valueobject.PKR)
	events := []ledger.Event{
		{EntityID: "c1", Timestamp: date(1), Kind: ledger.EventKindSale, Amount: decimal.RequireFromString("100"), ReferenceID: "INV-1"},
	}
	summary := report.Summary{Count: 1, Total: decimal.RequireFromString("100"), ByKind: map[ledger.EventKind]decimal.Decimal{ledger.EventKindSale: decimal.RequireFromString("100")}}

	buf := &bytes.Buffer{}
	require.NoError(t, e.ActivityXLSX(buf, events, summary))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	total, err := f.GetCellValue("Activity", "B5")
	require.NoError(t, err)
	assert.Equal(t, "100.00 PKR", total)
}

func TestPriceHistoryXLSX(t *testing.T) {
	e := New(valueobject.PKR)
	history := report.BuildPriceHistory("p1", "Hi-Speed Diesel", nil, decimal.RequireFromString("272.89"))

	buf := &bytes.Buffer{}
	require.NoError(t, e.PriceHistoryXLSX(buf, history))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	latest, err := f.GetCellValue("Price History", "B6")
	require.NoError(t, err)
	assert.Equal(t, "272.89 PKR", latest)
}
