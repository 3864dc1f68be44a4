// Package catalog bridges the shop's stored records to the numeric snapshot
// the planner consumes.
package catalog

import (
	"strings"

	"github.com/wheelhouse-cycles/wheelhouse/internal/model"
)

// conditionScores maps the shop's condition labels onto the 0-1 scale the
// scoring engine expects. Unknown labels land in the middle rather than
// failing the whole snapshot.
var conditionScores = map[string]float64{
	"new":       1.0,
	"excellent": 0.9,
	"good":      0.75,
	"fair":      0.5,
	"poor":      0.25,
	"damaged":   0.1,
}

// ConditionScore converts a condition label to a score in [0,1].
func ConditionScore(label string) float64 {
	if score, ok := conditionScores[strings.ToLower(strings.TrimSpace(label))]; ok {
		return score
	}
	return 0.5
}

// BuildSnapshot derives planner-ready bicycles from stored records and their
// rental history. Popularity is the bicycle's rental count normalized by the
// busiest bicycle in the catalog; with no history everything scores zero.
//
// The returned slice is a fresh copy: callers get an immutable snapshot, not
// a live view of the store.
func BuildSnapshot(bikes []model.Bicycle, rentalCounts map[int64]int) []model.Bicycle {
	maxCount := 0
	for _, n := range rentalCounts {
		if n > maxCount {
			maxCount = n
		}
	}

	snapshot := make([]model.Bicycle, len(bikes))
	for i, b := range bikes {
		// Shop records carry no separate acquisition price; candidates
		// without one are priced at their daily rental rate, matching the
		// ledger the planner replaces.
		if b.Price == 0 {
			b.Price = b.RentalRate
		}
		b.Condition = ConditionScore(b.ConditionLabel)
		if maxCount > 0 {
			b.Popularity = float64(rentalCounts[b.ID]) / float64(maxCount)
		} else {
			b.Popularity = 0
		}
		snapshot[i] = b
	}
	return snapshot
}
