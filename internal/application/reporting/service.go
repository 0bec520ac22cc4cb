package reporting

import (
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fuelflow/ledger/internal/domain/ledger"
	"github.com/fuelflow/ledger/internal/domain/report"
)

// Service runs the report pipeline over raw API records: normalize, sort,
// fold, bucket, filter. It owns no state and performs no I/O; the only side
// effect is diagnostic logging, notably the skip counts for records the
// normalizer excluded.
type Service struct {
	logger *zap.Logger
}

// NewService creates a new reporting service
func NewService(logger *zap.Logger) *Service {
	return &Service{logger: logger}
}

// Source is one batch of records from a single API endpoint, tagged with the
// event kind those records represent.
type Source struct {
	Kind    ledger.EventKind
	Records []map[string]any

	// Fields overrides the field mapping for this batch; the zero value
	// falls back to the default map.
	Fields ledger.FieldMap
}

// effectiveFieldMap falls back to the default mapping when a query supplies
// none.
func effectiveFieldMap(fields ledger.FieldMap) ledger.FieldMap {
	if len(fields.Date) == 0 && len(fields.Amount) == 0 {
		return ledger.DefaultFieldMap()
	}
	return fields
}

// ActivityQuery describes one entity-activity screen load: which entity,
// which period, the current filter controls, and the raw record batches
// fetched for it.
type ActivityQuery struct {
	EntityID   string
	EntityName string
	Opening    decimal.Decimal
	From       *time.Time
	To         *time.Time
	Search     string
	Kind       ledger.EventKind
	Sources    []Source
}

// ActivityView is everything the activity screen renders: the period
// statement with running balances, the rows surviving the current filter,
// their totals, and the normalization skip counts.
type ActivityView struct {
	Statement report.AccountStatement `json:"statement"`
	Filtered  []ledger.Event          `json:"filtered"`
	Summary   report.Summary          `json:"summary"`
	Skipped   ledger.SkipReport       `json:"skipped"`
}

// CustomerActivity builds the customer activity view.
func (s *Service) CustomerActivity(q ActivityQuery) (*ActivityView, error) {
	return s.activity("customer", q)
}

// SupplierActivity builds the supplier ledger view.
func (s *Service) SupplierActivity(q ActivityQuery) (*ActivityView, error) {
	return s.activity("supplier", q)
}

func (s *Service) activity(role string, q ActivityQuery) (*ActivityView, error) {
	events, skipped, err := s.normalizeSources(q.Sources)
	if err != nil {
		s.logger.Error("Failed to normalize activity sources",
			zap.String("role", role),
			zap.String("entity_id", q.EntityID),
			zap.Error(err))
		return nil, err
	}
	s.logSkips(role+" activity", q.EntityID, skipped)

	statement := report.BuildStatement(q.EntityID, q.EntityName, events, q.Opening, q.From, q.To)

	filtered, summary := report.Apply(events, report.FilterSpec{
		Search: q.Search,
		From:   q.From,
		To:     q.To,
		Kind:   q.Kind,
	})

	s.logger.Debug("Activity view built",
		zap.String("role", role),
		zap.String("entity_id", q.EntityID),
		zap.Int("events", len(events)),
		zap.Int("lines", len(statement.Lines)),
		zap.Int("filtered", len(filtered)))

	return &ActivityView{
		Statement: statement,
		Filtered:  filtered,
		Summary:   summary,
		Skipped:   skipped,
	}, nil
}

// AgingQuery describes a receivables or payables aging screen load: the open
// item rows, the as-of instant and the band boundaries.
type AgingQuery struct {
	Items  []map[string]any
	Fields ledger.FieldMap
	AsOf   time.Time
	Spec   ledger.BucketSpec
}

// AgingView is the aging report plus its normalization skip counts.
type AgingView struct {
	Report  report.AgingReport `json:"report"`
	Skipped ledger.SkipReport  `json:"skipped"`
}

// ReceivablesAging builds the accounts-receivable aging view.
func (s *Service) ReceivablesAging(q AgingQuery) (*AgingView, error) {
	return s.aging("receivables", q)
}

// PayablesAging builds the accounts-payable aging view.
func (s *Service) PayablesAging(q AgingQuery) (*AgingView, error) {
	return s.aging("payables", q)
}

func (s *Service) aging(role string, q AgingQuery) (*AgingView, error) {
	fields := effectiveFieldMap(q.Fields)

	items, skipped, err := ledger.NormalizeOutstanding(q.Items, fields)
	if err != nil {
		s.logger.Error("Failed to normalize open items",
			zap.String("role", role),
			zap.Error(err))
		return nil, err
	}
	s.logSkips(role+" aging", "", skipped)

	asOf := q.AsOf
	if asOf.IsZero() {
		asOf = time.Now()
	}

	rpt := report.BuildAgingReport(items, asOf, q.Spec)

	s.logger.Debug("Aging report built",
		zap.String("role", role),
		zap.Time("as_of", asOf),
		zap.Int("items", len(items)),
		zap.Int("rows", len(rpt.Rows)))

	return &AgingView{Report: rpt, Skipped: skipped}, nil
}

// PriceHistoryQuery describes a price-history screen load for one product.
type PriceHistoryQuery struct {
	ProductID   string
	ProductName string
	ListPrice   decimal.Decimal
	Changes     []map[string]any
	Fields      ledger.FieldMap
}

// PriceHistoryView is the price trajectory plus skip counts.
type PriceHistoryView struct {
	History report.PriceHistory `json:"history"`
	Skipped ledger.SkipReport   `json:"skipped"`
}

// ProductPriceHistory folds a product's price changes over its list price.
func (s *Service) ProductPriceHistory(q PriceHistoryQuery) (*PriceHistoryView, error) {
	fields := effectiveFieldMap(q.Fields)

	events, skipped, err := ledger.Normalize(q.Changes, ledger.EventKindPriceChange, fields)
	if err != nil {
		s.logger.Error("Failed to normalize price changes",
			zap.String("product_id", q.ProductID),
			zap.Error(err))
		return nil, err
	}
	s.logSkips("price history", q.ProductID, skipped)

	history := report.BuildPriceHistory(q.ProductID, q.ProductName, events, q.ListPrice)

	s.logger.Debug("Price history built",
		zap.String("product_id", q.ProductID),
		zap.Int("changes", len(history.Changes)))

	return &PriceHistoryView{History: history, Skipped: skipped}, nil
}

// normalizeSources converts every batch and merges the results into one
// chronologically sortable event set with an aggregate skip report.
func (s *Service) normalizeSources(sources []Source) ([]ledger.Event, ledger.SkipReport, error) {
	var total ledger.SkipReport
	batches := make([][]ledger.Event, 0, len(sources))

	for _, src := range sources {
		events, skipped, err := ledger.Normalize(src.Records, src.Kind, effectiveFieldMap(src.Fields))
		if err != nil {
			return nil, total, err
		}
		total = total.Add(skipped)
		batches = append(batches, events)
	}

	return ledger.Merge(batches...), total, nil
}

// logSkips surfaces the silent-skip policy: excluded records never fail a
// report, but their counts always reach the log.
func (s *Service) logSkips(screen, entityID string, skipped ledger.SkipReport) {
	if skipped.IsZero() {
		return
	}
	s.logger.Warn("Skipped malformed source records",
		zap.String("screen", screen),
		zap.String("entity_id", entityID),
		zap.Int("missing_date", skipped.MissingDate),
		zap.Int("bad_date", skipped.BadDate),
		zap.Int("missing_amount", skipped.MissingAmount),
		zap.Int("bad_amount", skipped.BadAmount),
		zap.Int("total", skipped.Total()))
}
