package planner

import (
	"math"

	"github.com/wheelhouse-cycles/wheelhouse/internal/model"
)

// scoreEpsilon bounds float comparison noise when two selections have an
// equal total score.
const scoreEpsilon = 1e-9

// Config holds tuning options for the selector.
type Config struct {
	// MaxDPStates caps the knapsack state space (cost dimension times the
	// item-count dimension). Inputs that do not fit at pence resolution are
	// solved on a coarser price grid instead and tagged approximate.
	MaxDPStates int
}

// DefaultConfig returns the default selector configuration.
func DefaultConfig() Config {
	return Config{MaxDPStates: 2_000_000}
}

// Select chooses the subset of scored bicycles that fits within budget while
// maximizing total raw score. maxItems caps the number of selections when
// positive; zero means unlimited.
//
// Prices quantize to pence for an exact 0/1 knapsack solution. When a price
// carries sub-pence precision or the pence-resolution state space exceeds
// cfg.MaxDPStates, the same knapsack runs over a coarser price grid sized to
// the cap; the returned plan's Strategy records which path produced it so
// callers know whether the optimality guarantee holds.
//
// Both paths keep TotalCost within budget, and for a fixed configuration the
// total score never decreases as the budget grows.
//
// A budget too small to afford any bicycle is not an error: the result is a
// valid empty plan with the full budget remaining.
func Select(scores model.Scores, budget float64, maxItems int, cfg Config) (model.Plan, error) {
	if budget < 0 {
		return model.Plan{}, ErrNegativeBudget
	}

	// Selection iterates in rank order so plans list bicycles best-first.
	ordered := make(model.Scores, len(scores))
	copy(ordered, scores)
	ordered.Sort()

	if pence, capacity, ok := quantize(ordered, budget, maxItems, cfg.MaxDPStates); ok {
		return solve(ordered, pence, capacity, budget, maxItems, model.StrategyDP), nil
	}
	units, capacity := coarsen(ordered, budget, maxItems, cfg.MaxDPStates)
	return solve(ordered, units, capacity, budget, maxItems, model.StrategyApprox), nil
}

// quantize converts prices to pence and reports whether the exact DP is
// tractable for this input.
func quantize(scores model.Scores, budget float64, maxItems, maxStates int) ([]int64, int64, bool) {
	capacity := int64(math.Floor(budget*100 + 1e-9))

	countDim := 1
	if maxItems > 0 {
		countDim = maxItems + 1
	}
	if capacity+1 > int64(maxStates)/int64(countDim) {
		return nil, 0, false
	}

	pence := make([]int64, len(scores))
	for i, s := range scores {
		p := s.Price * 100
		rounded := math.Round(p)
		if math.Abs(p-rounded) > 1e-6 {
			// Price has sub-pence precision; no natural quantization.
			return nil, 0, false
		}
		pence[i] = int64(rounded)
	}
	return pence, capacity, true
}

// coarsen maps prices onto a unit grid sized to fit the state cap. Each price
// rounds up to whole units, so any selection feasible on the grid costs at
// most the real budget. The grid size depends on the cap alone; a larger
// budget only shrinks each item's unit weight, so the feasible set, and with
// it the best reachable score, never shrinks as the budget grows.
func coarsen(scores model.Scores, budget float64, maxItems, maxStates int) ([]int64, int64) {
	countDim := int64(1)
	if maxItems > 0 {
		countDim = int64(maxItems) + 1
	}
	capacity := int64(maxStates)/countDim - 1
	if capacity < 1 {
		capacity = 1
	}

	units := make([]int64, len(scores))
	for i, s := range scores {
		switch {
		case s.Price <= 0:
			units[i] = 0
		case budget == 0 || s.Price > budget:
			units[i] = capacity + 1
		default:
			units[i] = int64(math.Ceil(s.Price / budget * float64(capacity)))
		}
	}
	return units, capacity
}

// dpCell is one knapsack state: the best selection found for a given weight
// ceiling. Selections are shared as immutable parent-linked nodes.
type dpCell struct {
	chain  *dpNode
	score  float64
	weight int64
	count  int
}

type dpNode struct {
	prev  *dpNode
	index int
}

// betterThan reports whether candidate a beats b: higher score wins, and for
// equal value the lighter selection wins to free remaining budget.
func (a dpCell) betterThan(b dpCell) bool {
	if a.score > b.score+scoreEpsilon {
		return true
	}
	if a.score < b.score-scoreEpsilon {
		return false
	}
	return a.weight < b.weight
}

// solve runs the 0/1 knapsack over integer item weights, either exact pence
// or coarsened units. Items are considered once each in rank order, so
// equal-value states resolve toward lower price then lower identifier.
func solve(scores model.Scores, weights []int64, capacity int64, budget float64, maxItems int, strategy model.Strategy) model.Plan {
	dp := make([]dpCell, capacity+1)

	for i := range scores {
		wi := weights[i]
		if wi > capacity {
			continue
		}
		for w := capacity; w >= wi; w-- {
			base := dp[w-wi]
			if maxItems > 0 && base.count >= maxItems {
				continue
			}
			candidate := dpCell{
				score:  base.score + scores[i].Raw,
				weight: base.weight + wi,
				count:  base.count + 1,
				chain:  &dpNode{index: i, prev: base.chain},
			}
			if candidate.betterThan(dp[w]) {
				dp[w] = candidate
			}
		}
	}

	best := dp[0]
	for w := int64(1); w <= capacity; w++ {
		if dp[w].betterThan(best) {
			best = dp[w]
		}
	}

	// Walk the parent chain; reversing restores rank order.
	var indices []int
	for node := best.chain; node != nil; node = node.prev {
		indices = append(indices, node.index)
	}

	plan := model.Plan{
		Strategy:        strategy,
		BudgetRemaining: budget,
	}
	for i := len(indices) - 1; i >= 0; i-- {
		s := scores[indices[i]]
		plan.Selected = append(plan.Selected, s.BicycleID)
		plan.TotalCost += s.Price
		plan.TotalScore += s.Raw
		plan.BudgetRemaining -= s.Price
	}
	return plan
}
