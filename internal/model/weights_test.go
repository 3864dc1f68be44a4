package model

import (
	"math"
	"testing"
)

func TestWeights_Validate(t *testing.T) {
	tests := []struct {
		name    string
		weights Weights
		wantErr bool
	}{
		{name: "all positive", weights: Weights{Condition: 1, Popularity: 2, PriceEfficiency: 3}},
		{name: "all zero is valid", weights: Weights{}},
		{name: "negative condition", weights: Weights{Condition: -0.1}, wantErr: true},
		{name: "negative popularity", weights: Weights{Popularity: -1}, wantErr: true},
		{name: "negative price efficiency", weights: Weights{PriceEfficiency: -0.5}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.weights.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWeights_Normalized(t *testing.T) {
	w := Weights{Condition: 2, Popularity: 1, PriceEfficiency: 1}.Normalized()
	if math.Abs(w.Condition-0.5) > 1e-9 || math.Abs(w.Popularity-0.25) > 1e-9 || math.Abs(w.PriceEfficiency-0.25) > 1e-9 {
		t.Errorf("unexpected normalization: %+v", w)
	}

	// All-zero weights must fall back to equal thirds, never divide by zero.
	zero := Weights{}.Normalized()
	sum := zero.Condition + zero.Popularity + zero.PriceEfficiency
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("zero weights should normalize to sum 1, got %f", sum)
	}
	if math.Abs(zero.Condition-zero.Popularity) > 1e-9 {
		t.Errorf("zero weights should spread equally, got %+v", zero)
	}
}
