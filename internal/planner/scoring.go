// Package planner implements the budget-constrained acquisition planner:
// scoring eligible bicycles, selecting a purchase set under a budget, and
// orchestrating the two over a catalog snapshot.
package planner

import (
	"fmt"

	"github.com/wheelhouse-cycles/wheelhouse/internal/model"
)

// ScoreAll computes one recommendation score per bicycle from the weighted
// factors. It is a pure function of its inputs: the catalog slice is never
// mutated and no state is carried between calls.
//
// Price efficiency is 1 - (price-min)/(max-min) over the catalog's price
// range; when every price is equal the range is zero-width and efficiency
// defaults to 1 for all bicycles. Weights are normalized to sum to one before
// combining, with all-zero weights falling back to equal thirds.
func ScoreAll(bikes []model.Bicycle, weights model.Weights) (model.Scores, error) {
	if len(bikes) == 0 {
		return nil, ErrEmptyCatalog
	}
	if err := weights.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWeight, err)
	}

	w := weights.Normalized()

	minPrice, maxPrice := bikes[0].Price, bikes[0].Price
	for _, b := range bikes[1:] {
		if b.Price < minPrice {
			minPrice = b.Price
		}
		if b.Price > maxPrice {
			maxPrice = b.Price
		}
	}
	priceRange := maxPrice - minPrice

	scores := make(model.Scores, 0, len(bikes))
	for _, b := range bikes {
		efficiency := 1.0
		if priceRange > 0 {
			efficiency = 1 - (b.Price-minPrice)/priceRange
		}

		raw := w.Condition*b.Condition +
			w.Popularity*b.Popularity +
			w.PriceEfficiency*efficiency

		scores = append(scores, model.Score{
			BicycleID: b.ID,
			Price:     b.Price,
			Raw:       raw,
		})
	}

	scores.Sort()
	return scores, nil
}
