package model

import "fmt"

// Weights holds the buyer-supplied preference weights for the scoring factors.
// Weights need not sum to one; the scoring engine normalizes them. All-zero
// weights fall back to equal weighting across the three factors.
type Weights struct {
	Condition       float64
	Popularity      float64
	PriceEfficiency float64
}

// DefaultWeights returns an even split across the three scoring factors.
func DefaultWeights() Weights {
	return Weights{Condition: 1, Popularity: 1, PriceEfficiency: 1}
}

// Validate rejects negative weights.
func (w Weights) Validate() error {
	if w.Condition < 0 {
		return fmt.Errorf("condition weight must be non-negative, got %.2f", w.Condition)
	}
	if w.Popularity < 0 {
		return fmt.Errorf("popularity weight must be non-negative, got %.2f", w.Popularity)
	}
	if w.PriceEfficiency < 0 {
		return fmt.Errorf("price efficiency weight must be non-negative, got %.2f", w.PriceEfficiency)
	}
	return nil
}

// Normalized returns the weights scaled to sum to one. All-zero input yields
// equal thirds so downstream arithmetic never divides by zero.
func (w Weights) Normalized() Weights {
	total := w.Condition + w.Popularity + w.PriceEfficiency
	if total == 0 {
		third := 1.0 / 3.0
		return Weights{Condition: third, Popularity: third, PriceEfficiency: third}
	}
	return Weights{
		Condition:       w.Condition / total,
		Popularity:      w.Popularity / total,
		PriceEfficiency: w.PriceEfficiency / total,
	}
}
