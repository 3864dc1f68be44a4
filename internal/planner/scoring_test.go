package planner

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wheelhouse-cycles/wheelhouse/internal/model"
)

func availableBike(id int64, price, condition, popularity float64) model.Bicycle {
	return model.Bicycle{
		ID:         id,
		Brand:      "Test",
		Type:       model.TypeRoad,
		Price:      price,
		Condition:  condition,
		Popularity: popularity,
		Status:     model.StatusAvailable,
	}
}

func TestScoreAll_EmptyCatalog(t *testing.T) {
	_, err := ScoreAll(nil, model.DefaultWeights())
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestScoreAll_NegativeWeight(t *testing.T) {
	bikes := []model.Bicycle{availableBike(1, 100, 0.5, 0.5)}
	_, err := ScoreAll(bikes, model.Weights{Condition: -1})
	assert.ErrorIs(t, err, ErrInvalidWeight)
}

func TestScoreAll_OneScorePerRecordWithContiguousRanks(t *testing.T) {
	bikes := []model.Bicycle{
		availableBike(1, 100, 0.9, 0.1),
		availableBike(2, 200, 0.5, 0.8),
		availableBike(3, 300, 0.2, 0.3),
		availableBike(4, 150, 0.7, 0.7),
	}

	scores, err := ScoreAll(bikes, model.DefaultWeights())
	require.NoError(t, err)
	require.Len(t, scores, len(bikes))

	seen := make(map[int]bool)
	for i, s := range scores {
		assert.Equal(t, i+1, s.Rank, "ranks must be contiguous 1..N")
		assert.False(t, seen[s.Rank], "no two records may share a rank")
		seen[s.Rank] = true
	}
}

func TestScoreAll_WeightedCombination(t *testing.T) {
	// Two bicycles, price efficiency weighted out: raw score is the
	// normalized condition/popularity mix alone.
	bikes := []model.Bicycle{
		availableBike(1, 200, 0.9, 0.5),
		availableBike(2, 150, 0.6, 0.9),
	}
	weights := model.Weights{Condition: 0.5, Popularity: 0.5, PriceEfficiency: 0}

	scores, err := ScoreAll(bikes, weights)
	require.NoError(t, err)

	byID := make(map[int64]model.Score)
	for _, s := range scores {
		byID[s.BicycleID] = s
	}
	assert.InDelta(t, 0.70, byID[1].Raw, 1e-9)
	assert.InDelta(t, 0.75, byID[2].Raw, 1e-9)
	assert.Equal(t, 1, byID[2].Rank)
}

func TestScoreAll_PriceEfficiency(t *testing.T) {
	bikes := []model.Bicycle{
		availableBike(1, 100, 0, 0),
		availableBike(2, 300, 0, 0),
		availableBike(3, 500, 0, 0),
	}
	weights := model.Weights{PriceEfficiency: 1}

	scores, err := ScoreAll(bikes, weights)
	require.NoError(t, err)

	byID := make(map[int64]float64)
	for _, s := range scores {
		byID[s.BicycleID] = s.Raw
	}
	assert.InDelta(t, 1.0, byID[1], 1e-9, "cheapest bicycle has full price efficiency")
	assert.InDelta(t, 0.5, byID[2], 1e-9)
	assert.InDelta(t, 0.0, byID[3], 1e-9, "most expensive bicycle has zero price efficiency")
}

func TestScoreAll_UniformPrices(t *testing.T) {
	// A zero-width price range must not divide by zero; every bicycle gets
	// full price efficiency instead.
	bikes := []model.Bicycle{
		availableBike(1, 250, 0.4, 0.4),
		availableBike(2, 250, 0.4, 0.4),
		availableBike(3, 250, 0.4, 0.4),
	}

	scores, err := ScoreAll(bikes, model.Weights{PriceEfficiency: 1})
	require.NoError(t, err)
	for _, s := range scores {
		assert.InDelta(t, 1.0, s.Raw, 1e-9)
		assert.False(t, math.IsNaN(s.Raw))
	}
}

func TestScoreAll_AllZeroWeightsFallBackToEqual(t *testing.T) {
	bikes := []model.Bicycle{
		availableBike(1, 100, 0.9, 0.9),
		availableBike(2, 100, 0.3, 0.3),
	}

	scores, err := ScoreAll(bikes, model.Weights{})
	require.NoError(t, err)

	byID := make(map[int64]float64)
	for _, s := range scores {
		byID[s.BicycleID] = s.Raw
	}
	// Equal thirds over condition, popularity and a uniform price
	// efficiency of 1.
	assert.InDelta(t, (0.9+0.9+1.0)/3, byID[1], 1e-9)
	assert.InDelta(t, (0.3+0.3+1.0)/3, byID[2], 1e-9)
}

func TestScoreAll_DoesNotMutateInput(t *testing.T) {
	bikes := []model.Bicycle{
		availableBike(1, 100, 0.9, 0.1),
		availableBike(2, 200, 0.5, 0.8),
	}
	before := make([]model.Bicycle, len(bikes))
	copy(before, bikes)

	_, err := ScoreAll(bikes, model.DefaultWeights())
	require.NoError(t, err)
	assert.Equal(t, before, bikes)
}
