package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fuelflow/ledger/internal/application/reporting"
	"github.com/fuelflow/ledger/internal/domain/ledger"
	"github.com/fuelflow/ledger/internal/domain/report"
	"github.com/fuelflow/ledger/internal/domain/shared/valueobject"
	"github.com/fuelflow/ledger/internal/infrastructure/config"
	"github.com/fuelflow/ledger/internal/infrastructure/demodata"
	"github.com/fuelflow/ledger/internal/infrastructure/export"
	"github.com/fuelflow/ledger/internal/infrastructure/logger"
)

const dateLayout = "2006-01-02"

// activityFilters carries the filter flags through to the activity command.
type activityFilters struct {
	search string
	kind   string
	from   string
	to     string
}

func main() {
	// Parse flags
	var (
		dataPath string
		outDir   string
		logLevel string
		filters  activityFilters
	)

	flag.StringVar(&dataPath, "data", "demo-data.json", "Dataset JSON path (written by 'demo', read by the report commands)")
	flag.StringVar(&outDir, "out", "", "Report output directory (default: export.dir from config)")
	flag.StringVar(&logLevel, "log-level", "", "Log level override: debug, info, warn, error")
	flag.StringVar(&filters.search, "search", "", "Activity filter: case-insensitive text match on reference and notes")
	flag.StringVar(&filters.kind, "kind", "", "Activity filter: event kind (sale, payment, credit, adjustment, price-change, expense)")
	flag.StringVar(&filters.from, "from", "", "Activity period start, YYYY-MM-DD (inclusive)")
	flag.StringVar(&filters.to, "to", "", "Activity period end, YYYY-MM-DD (inclusive)")
	flag.Parse()

	// Get command and arguments
	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	if outDir == "" {
		outDir = cfg.Export.Dir
	}

	svc := reporting.NewService(log)
	exp := export.New(valueobject.Currency(cfg.Report.Currency))

	switch command {
	case "demo":
		runDemo(log, cfg, dataPath)

	case "activity":
		if len(args) < 3 {
			log.Fatal("Entity required. Usage: fuelreport activity <customer|supplier> <entity-id>")
		}
		runActivity(log, svc, exp, cfg, args[1], args[2], filters, dataPath, outDir)

	case "receivables", "payables":
		runAging(log, svc, exp, cfg, command, dataPath, outDir)

	case "prices":
		if len(args) < 2 {
			log.Fatal("Product required. Usage: fuelreport prices <product-id>")
		}
		runPrices(log, svc, exp, cfg, args[1], dataPath, outDir)

	case "buckets":
		runBuckets(log, cfg)

	default:
		log.Error("Unknown command", zap.String("command", command))
		printUsage()
		os.Exit(1)
	}
}

// runDemo generates a dataset from the configured profile and writes it to
// the dataset path.
func runDemo(log *zap.Logger, cfg *config.Config, dataPath string) {
	profile := demodata.Profile{
		Seed:      cfg.Demo.Seed,
		Days:      cfg.Demo.Days,
		Customers: cfg.Demo.Customers,
		Suppliers: cfg.Demo.Suppliers,
	}

	ds, err := demodata.NewGenerator().Generate(profile)
	if err != nil {
		log.Fatal("Failed to generate demo dataset", zap.Error(err))
	}
	if err := ds.WriteFile(dataPath); err != nil {
		log.Fatal("Failed to write dataset", zap.String("path", dataPath), zap.Error(err))
	}

	log.Info("Demo dataset written",
		zap.String("path", dataPath),
		zap.Int64("seed", ds.Seed),
		zap.Int("sales", len(ds.Sales)),
		zap.Int("payments", len(ds.Payments)),
		zap.Int("open_invoices", len(ds.OpenInvoices)),
		zap.Int("expenses", len(ds.Expenses)),
		zap.Int("price_changes", len(ds.PriceChanges)))
}

// runActivity builds the statement for one customer or supplier and renders
// it. When any filter flag is set, the filtered event rows are rendered as a
// second document.
func runActivity(log *zap.Logger, svc *reporting.Service, exp export.Exporter, cfg *config.Config, role, entityID string, filters activityFilters, dataPath, outDir string) {
	ds := mustDataset(log, dataPath)

	q := reporting.ActivityQuery{EntityID: entityID}
	switch role {
	case "customer":
		q.EntityName = lookupName(ds.Customers, entityID)
		q.Sources = []reporting.Source{
			{Kind: ledger.EventKindSale, Records: recordsFor(ds.Sales, "customerId", entityID)},
			{Kind: ledger.EventKindPayment, Records: recordsFor(ds.Payments, "customerId", entityID)},
			{Kind: ledger.EventKindCredit, Records: recordsFor(ds.Credits, "customerId", entityID)},
		}
	case "supplier":
		q.EntityName = lookupName(ds.Suppliers, entityID)
		q.Sources = []reporting.Source{
			{Kind: ledger.EventKindExpense, Records: recordsFor(ds.Expenses, "supplierId", entityID)},
			{Kind: ledger.EventKindPayment, Records: recordsFor(ds.SupplierPayments, "supplierId", entityID)},
		}
	default:
		log.Fatal("Unknown activity role. Usage: fuelreport activity <customer|supplier> <entity-id>",
			zap.String("role", role))
	}

	q.Search = filters.search
	if filters.kind != "" {
		kind, err := ledger.ParseEventKind(filters.kind)
		if err != nil {
			log.Fatal("Unknown event kind", zap.String("kind", filters.kind))
		}
		q.Kind = kind
	}
	q.From = parseDateFlag(log, "from", filters.from, false)
	q.To = parseDateFlag(log, "to", filters.to, true)

	var (
		view *reporting.ActivityView
		err  error
	)
	if role == "customer" {
		view, err = svc.CustomerActivity(q)
	} else {
		view, err = svc.SupplierActivity(q)
	}
	if err != nil {
		log.Fatal("Failed to build activity view", zap.String("entity_id", entityID), zap.Error(err))
	}

	base := role + "-activity-" + entityID
	exportDocument(log, &cfg.Export, outDir, base,
		func(w io.Writer) error { return exp.StatementCSV(w, view.Statement) },
		func(w io.Writer) error { return exp.StatementXLSX(w, view.Statement) })

	if filters.search != "" || filters.kind != "" || filters.from != "" || filters.to != "" {
		exportDocument(log, &cfg.Export, outDir, base+"-filtered",
			func(w io.Writer) error { return exp.ActivityCSV(w, view.Filtered, view.Summary) },
			func(w io.Writer) error { return exp.ActivityXLSX(w, view.Filtered, view.Summary) })
	}

	log.Info("Activity report built",
		zap.String("role", role),
		zap.String("entity_id", entityID),
		zap.Int("lines", len(view.Statement.Lines)),
		zap.String("closing", view.Statement.Closing.StringFixed(2)),
		zap.Int("skipped", view.Skipped.Total()))
}

// runAging builds the receivables or payables aging report from the open
// items in the dataset.
func runAging(log *zap.Logger, svc *reporting.Service, exp export.Exporter, cfg *config.Config, role, dataPath, outDir string) {
	ds := mustDataset(log, dataPath)

	spec, err := ledger.NewBucketSpec(cfg.Report.BucketBounds...)
	if err != nil {
		log.Fatal("Invalid bucket bounds", zap.Ints("bounds", cfg.Report.BucketBounds), zap.Error(err))
	}
	asOf, err := cfg.Report.AsOfTime()
	if err != nil {
		log.Fatal("Invalid as-of date", zap.String("as_of", cfg.Report.AsOf), zap.Error(err))
	}

	q := reporting.AgingQuery{AsOf: asOf, Spec: spec}

	var view *reporting.AgingView
	if role == "receivables" {
		q.Items = ds.OpenInvoices
		view, err = svc.ReceivablesAging(q)
	} else {
		q.Items = ds.OpenBills
		view, err = svc.PayablesAging(q)
	}
	if err != nil {
		log.Fatal("Failed to build aging report", zap.String("report", role), zap.Error(err))
	}

	exportDocument(log, &cfg.Export, outDir, role+"-aging",
		func(w io.Writer) error { return exp.AgingCSV(w, view.Report) },
		func(w io.Writer) error { return exp.AgingXLSX(w, view.Report) })

	log.Info("Aging report built",
		zap.String("report", role),
		zap.Time("as_of", view.Report.AsOf),
		zap.Int("entities", len(view.Report.Rows)),
		zap.String("outstanding", view.Report.GrandTotal.StringFixed(2)),
		zap.Int("skipped", view.Skipped.Total()))
}

// runPrices builds the price history for one product.
func runPrices(log *zap.Logger, svc *reporting.Service, exp export.Exporter, cfg *config.Config, productID, dataPath, outDir string) {
	ds := mustDataset(log, dataPath)

	product := findRecord(ds.Products, "id", productID)
	if product == nil {
		log.Fatal("Unknown product", zap.String("product_id", productID))
	}
	name, _ := product["name"].(string)
	listPrice, err := recordPrice(product)
	if err != nil {
		log.Fatal("Product record has no usable list price", zap.String("product_id", productID), zap.Error(err))
	}

	view, err := svc.ProductPriceHistory(reporting.PriceHistoryQuery{
		ProductID:   productID,
		ProductName: name,
		ListPrice:   listPrice,
		Changes:     ds.PriceChanges,
	})
	if err != nil {
		log.Fatal("Failed to build price history", zap.String("product_id", productID), zap.Error(err))
	}

	exportDocument(log, &cfg.Export, outDir, "price-history-"+productID,
		func(w io.Writer) error { return exp.PriceHistoryCSV(w, view.History) },
		func(w io.Writer) error { return exp.PriceHistoryXLSX(w, view.History) })

	log.Info("Price history built",
		zap.String("product_id", productID),
		zap.Int("changes", len(view.History.Changes)),
		zap.String("latest", view.History.LatestPrice.StringFixed(2)),
		zap.Int("skipped", view.Skipped.Total()))
}

// runBuckets prints the effective aging bands so a configured boundary change
// can be checked without building a report.
func runBuckets(log *zap.Logger, cfg *config.Config) {
	spec, err := ledger.NewBucketSpec(cfg.Report.BucketBounds...)
	if err != nil {
		log.Fatal("Invalid bucket bounds", zap.Ints("bounds", cfg.Report.BucketBounds), zap.Error(err))
	}
	asOf, err := cfg.Report.AsOfTime()
	if err != nil {
		log.Fatal("Invalid as-of date", zap.String("as_of", cfg.Report.AsOf), zap.Error(err))
	}
	if asOf.IsZero() {
		asOf = time.Now()
	}

	fmt.Println("Aging bands as of", asOf.Format(dateLayout))
	for _, b := range ledger.Bucketize(nil, asOf, spec) {
		if b.UpperDays < 0 {
			fmt.Printf("  - %-8s %d+ days\n", b.Label, b.LowerDays)
		} else {
			fmt.Printf("  - %-8s %d-%d days\n", b.Label, b.LowerDays, b.UpperDays-1)
		}
	}
}

// mustDataset loads the dataset the report commands read from.
func mustDataset(log *zap.Logger, path string) *demodata.Dataset {
	ds, err := demodata.ReadFile(path)
	if err != nil {
		log.Fatal("Failed to read dataset. Run 'fuelreport demo' to generate one.",
			zap.String("path", path), zap.Error(err))
	}
	return ds
}

// exportDocument renders one report document in every configured format.
func exportDocument(log *zap.Logger, cfg *config.ExportConfig, dir, base string, csvFn, xlsxFn func(io.Writer) error) {
	if cfg.WantsFormat("csv") {
		writeReport(log, dir, base+".csv", csvFn)
	}
	if cfg.WantsFormat("xlsx") {
		writeReport(log, dir, base+".xlsx", xlsxFn)
	}
}

// writeReport creates the output file and streams one rendered document
// into it.
func writeReport(log *zap.Logger, dir, name string, write func(io.Writer) error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatal("Failed to create output directory", zap.String("dir", dir), zap.Error(err))
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		log.Fatal("Failed to create report file", zap.String("path", path), zap.Error(err))
	}
	if err := write(f); err != nil {
		f.Close()
		log.Fatal("Failed to write report", zap.String("path", path), zap.Error(err))
	}
	if err := f.Close(); err != nil {
		log.Fatal("Failed to close report file", zap.String("path", path), zap.Error(err))
	}

	log.Info("Report written", zap.String("path", path))
}

// parseDateFlag parses a YYYY-MM-DD flag value; the -to flag is pushed to the
// end of its day so the range stays inclusive.
func parseDateFlag(log *zap.Logger, name, value string, endOfDay bool) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		log.Fatal("Invalid date flag, expected YYYY-MM-DD",
			zap.String("flag", name), zap.String("value", value))
	}
	if endOfDay {
		t = report.EndOfDay(t)
	}
	return &t
}

// recordsFor filters a record batch down to one entity.
func recordsFor(records []map[string]any, key, id string) []map[string]any {
	matched := make([]map[string]any, 0, len(records))
	for _, r := range records {
		if v, ok := r[key].(string); ok && v == id {
			matched = append(matched, r)
		}
	}
	return matched
}

// findRecord returns the first record whose key equals id, or nil.
func findRecord(records []map[string]any, key, id string) map[string]any {
	for _, r := range records {
		if v, ok := r[key].(string); ok && v == id {
			return r
		}
	}
	return nil
}

// lookupName resolves an entity's display name from the master data.
func lookupName(records []map[string]any, id string) string {
	r := findRecord(records, "id", id)
	if r == nil {
		return ""
	}
	name, _ := r["name"].(string)
	return name
}

// recordPrice reads a product's list price. In-memory datasets carry a
// decimal; datasets reloaded from JSON carry the price as a string.
func recordPrice(record map[string]any) (decimal.Decimal, error) {
	switch v := record["price"].(type) {
	case decimal.Decimal:
		return v, nil
	case string:
		return decimal.NewFromString(v)
	case float64:
		return decimal.NewFromFloat(v), nil
	}
	return decimal.Decimal{}, fmt.Errorf("no usable price on product record")
}

func printUsage() {
	fmt.Println(`FuelFlow Report Tool

Usage:
  fuelreport [flags] <command> [arguments]

Commands:
  demo                               Generate a demo dataset JSON
  activity <customer|supplier> <id>  Account statement for one entity
  receivables                        Accounts-receivable aging report
  payables                           Accounts-payable aging report
  prices <product-id>                Price history for one product
  buckets                            Print the effective aging bands

Flags:
  -data string       Dataset JSON path (default: demo-data.json)
  -out string        Report output directory (default: export.dir from config)
  -log-level string  Log level override: debug, info, warn, error
  -search string     Activity filter: text match on reference and notes
  -kind string       Activity filter: event kind (sale, payment, credit, ...)
  -from string       Activity period start, YYYY-MM-DD
  -to string         Activity period end, YYYY-MM-DD

Environment Variables:
  FUELFLOW_REPORT_AS_OF, FUELFLOW_REPORT_CURRENCY, FUELFLOW_EXPORT_DIR,
  FUELFLOW_EXPORT_FORMATS, FUELFLOW_DEMO_SEED, FUELFLOW_LOG_LEVEL

Examples:
  # Generate a dataset, then build the receivables aging report
  fuelreport demo
  fuelreport receivables

  # Statement for one customer over June, plus the filtered rows
  fuelreport -from 2026-06-01 -to 2026-06-30 activity customer CUST-0001

  # Diesel price trajectory
  fuelreport prices PRD-001`)
}
