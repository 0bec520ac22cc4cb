package ledger

import (
	"fmt"
	"time"

	"github.com/fuelflow/ledger/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OutstandingItem is an unsettled amount aged from its origin date, such as
// an open invoice on the receivables screen or an unpaid supplier bill.
type OutstandingItem struct {
	EntityID   string          `json:"entity_id"`
	EntityName string          `json:"entity_name,omitempty"`
	Reference  string          `json:"reference"`
	Amount     decimal.Decimal `json:"amount"`
	OriginDate time.Time       `json:"origin_date"`
}

// AgeInDays returns whole days elapsed from origin to asOf, truncated toward
// zero. Future-dated origins yield a negative age.
func AgeInDays(asOf, origin time.Time) int {
	return int(asOf.Sub(origin).Hours() / 24)
}

// BucketSpec defines aging band boundaries as ascending day cut points.
// Boundaries {30, 60, 90} produce the default bands current (<30), 30-59,
// 60-89 and 90+. The receivables and payables screens use the default;
// boundaries stay configurable because statement layouts differ per site.
type BucketSpec struct {
	Boundaries []int `json:"boundaries"`
}

// DefaultBucketSpec returns the standard current/30/60/90+ banding.
func DefaultBucketSpec() BucketSpec {
	return BucketSpec{Boundaries: []int{30, 60, 90}}
}

// NewBucketSpec builds a BucketSpec from explicit cut points, which must be
// positive and strictly ascending.
func NewBucketSpec(boundaries ...int) (BucketSpec, error) {
	if len(boundaries) == 0 {
		return BucketSpec{}, shared.ErrInvalidBucketSpec
	}
	prev := 0
	for _, b := range boundaries {
		if b <= prev {
			return BucketSpec{}, shared.ErrInvalidBucketSpec
		}
		prev = b
	}
	spec := BucketSpec{Boundaries: make([]int, len(boundaries))}
	copy(spec.Boundaries, boundaries)
	return spec, nil
}

// Labels returns the display label of each band, first to last,
// e.g. ["current", "30-59", "60-89", "90+"].
func (s BucketSpec) Labels() []string {
	bounds := s.effectiveBoundaries()
	labels := make([]string, 0, len(bounds)+1)
	labels = append(labels, "current")
	for i, lower := range bounds {
		if i == len(bounds)-1 {
			labels = append(labels, fmt.Sprintf("%d+", lower))
		} else {
			labels = append(labels, fmt.Sprintf("%d-%d", lower, bounds[i+1]-1))
		}
	}
	return labels
}

// bucketIndex places an age into exactly one band: lower bound inclusive,
// upper bound exclusive, last band open-ended. Negative ages (future-dated
// items) count as current.
func (s BucketSpec) bucketIndex(ageDays int) int {
	if ageDays < 0 {
		return 0
	}
	bounds := s.effectiveBoundaries()
	for i := len(bounds) - 1; i >= 0; i-- {
		if ageDays >= bounds[i] {
			return i + 1
		}
	}
	return 0
}

// effectiveBoundaries falls back to the default banding for a zero-value
// spec so that a missing configuration degrades instead of failing.
func (s BucketSpec) effectiveBoundaries() []int {
	if len(s.Boundaries) == 0 {
		return DefaultBucketSpec().Boundaries
	}
	return s.Boundaries
}

// Bucket is one aging band with the amounts that fell into it.
type Bucket struct {
	Label     string          `json:"label"`
	LowerDays int             `json:"lower_days"` // inclusive
	UpperDays int             `json:"upper_days"` // exclusive; -1 marks the open-ended last band
	Amount    decimal.Decimal `json:"amount"`
	Count     int             `json:"count"`
}

// Bucketize partitions outstanding items into aging bands by age at the asOf
// instant. Every item lands in exactly one band, so the band amounts always
// sum to the input total. The asOf time is the only clock involved; repeated
// calls with the same inputs return identical buckets.
func Bucketize(items []OutstandingItem, asOf time.Time, spec BucketSpec) []Bucket {
	bounds := spec.effectiveBoundaries()
	labels := spec.Labels()

	buckets := make([]Bucket, len(bounds)+1)
	for i := range buckets {
		lower := 0
		if i > 0 {
			lower = bounds[i-1]
		}
		upper := -1
		if i < len(bounds) {
			upper = bounds[i]
		}
		buckets[i] = Bucket{
			Label:     labels[i],
			LowerDays: lower,
			UpperDays: upper,
			Amount:    decimal.Zero,
		}
	}

	for _, item := range items {
		idx := spec.bucketIndex(AgeInDays(asOf, item.OriginDate))
		buckets[idx].Amount = buckets[idx].Amount.Add(item.Amount)
		buckets[idx].Count++
	}

	return buckets
}

// BucketTotal returns the sum over all bucket amounts.
func BucketTotal(buckets []Bucket) decimal.Decimal {
	total := decimal.Zero
	for _, b := range buckets {
		total = total.Add(b.Amount)
	}
	return total
}
