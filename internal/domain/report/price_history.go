package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fuelflow/ledger/internal/domain/ledger"
)

// PriceChange is one row of the price-history screen: the delta applied on
// a date and the unit price that resulted.
type PriceChange struct {
	Date        time.Time       `json:"date"`
	Reference   string          `json:"reference"`
	Description string          `json:"description,omitempty"`
	Delta       decimal.Decimal `json:"delta"`
	Price       decimal.Decimal `json:"price"`
}

// PriceHistory is a product's price trajectory: the list price it started
// at and every change since, in order.
type PriceHistory struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	ListPrice   decimal.Decimal `json:"list_price"`
	Changes     []PriceChange   `json:"changes"`
	LatestPrice decimal.Decimal `json:"latest_price"`
	NetChange   decimal.Decimal `json:"net_change"` // LatestPrice - ListPrice
}

// BuildPriceHistory folds a product's price-change events over its list
// price. The running-balance fold doubles as the price trajectory: each
// snapshot's balance is the unit price after that change. Events of other
// kinds or other products are ignored.
func BuildPriceHistory(productID, productName string, events []ledger.Event, listPrice decimal.Decimal) PriceHistory {
	history := PriceHistory{
		ProductID:   productID,
		ProductName: productName,
		ListPrice:   listPrice,
		Changes:     make([]PriceChange, 0, len(events)),
	}

	scoped := make([]ledger.Event, 0, len(events))
	for _, event := range events {
		if event.Kind != ledger.EventKindPriceChange {
			continue
		}
		if productID != "" && event.EntityID != productID {
			continue
		}
		scoped = append(scoped, event)
	}
	ledger.SortChronological(scoped)

	snapshots := ledger.RunningBalance(scoped, listPrice)
	for _, snap := range snapshots {
		history.Changes = append(history.Changes, PriceChange{
			Date:        snap.Event.Timestamp,
			Reference:   snap.Event.ReferenceID,
			Description: snap.Event.Description,
			Delta:       snap.Event.Amount,
			Price:       snap.Balance,
		})
	}

	history.LatestPrice = ledger.ClosingBalance(snapshots, listPrice)
	history.NetChange = history.LatestPrice.Sub(listPrice)

	return history
}
