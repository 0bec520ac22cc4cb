package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fuelflow/ledger/internal/domain/ledger"
)

// AgingRow is one entity's line on the receivables or payables aging screen.
type AgingRow struct {
	EntityID   string          `json:"entity_id"`
	EntityName string          `json:"entity_name,omitempty"`
	Buckets    []ledger.Bucket `json:"buckets"`
	Total      decimal.Decimal `json:"total"`
	ItemCount  int             `json:"item_count"`
}

// AgingReport groups outstanding items per entity and per aging band, with a
// grand-total row across all entities.
type AgingReport struct {
	AsOf       time.Time       `json:"as_of"`
	Labels     []string        `json:"labels"`
	Rows       []AgingRow      `json:"rows"`
	Totals     []ledger.Bucket `json:"totals"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// BuildAgingReport buckets every entity's open items by age at asOf. Rows
// are sorted by entity name, then ID, for stable rendering; the Totals row
// re-buckets the full item set, so its bands always sum to GrandTotal.
func BuildAgingReport(items []ledger.OutstandingItem, asOf time.Time, spec ledger.BucketSpec) AgingReport {
	rpt := AgingReport{
		AsOf:   asOf,
		Labels: spec.Labels(),
		Rows:   make([]AgingRow, 0),
	}

	byEntity := make(map[string][]ledger.OutstandingItem)
	for _, item := range items {
		byEntity[item.EntityID] = append(byEntity[item.EntityID], item)
	}

	for entityID, entityItems := range byEntity {
		buckets := ledger.Bucketize(entityItems, asOf, spec)
		rpt.Rows = append(rpt.Rows, AgingRow{
			EntityID:   entityID,
			EntityName: entityItems[0].EntityName,
			Buckets:    buckets,
			Total:      ledger.BucketTotal(buckets),
			ItemCount:  len(entityItems),
		})
	}

	sort.Slice(rpt.Rows, func(i, j int) bool {
		if rpt.Rows[i].EntityName != rpt.Rows[j].EntityName {
			return rpt.Rows[i].EntityName < rpt.Rows[j].EntityName
		}
		return rpt.Rows[i].EntityID < rpt.Rows[j].EntityID
	})

	rpt.Totals = ledger.Bucketize(items, asOf, spec)
	rpt.GrandTotal = ledger.BucketTotal(rpt.Totals)

	return rpt
}
