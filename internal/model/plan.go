package model

// Strategy tags which selection algorithm produced a purchase plan. Callers
// branch on this to know whether the optimality guarantee holds.
type Strategy string

// Selection strategies.
const (
	// StrategyDP is the exact 0/1 knapsack solution over pence-quantized
	// prices; total score is optimal for that quantization.
	StrategyDP Strategy = "dp"
	// StrategyApprox is the knapsack over a coarsened price grid, used when
	// pence resolution would blow the state budget. Scores still never
	// decrease as the budget grows, but optimality is not guaranteed.
	StrategyApprox Strategy = "approx"
)

// Plan is the outcome of a single planning invocation: the ordered set of
// bicycles to purchase, respecting the budget ceiling.
type Plan struct {
	Strategy             Strategy
	Selected             []int64
	TotalCost            float64
	TotalScore           float64
	BudgetRemaining      float64
	CandidatesConsidered int
	// CatalogEmpty distinguishes "no catalog data at all" from "filters
	// excluded everything" when a planning run finds no candidates.
	CatalogEmpty bool
}

// Count returns the number of bicycles selected.
func (p *Plan) Count() int {
	return len(p.Selected)
}

// BudgetUtilization returns the fraction of the budget spent, in percent.
// A zero budget reports zero utilization.
func (p *Plan) BudgetUtilization() float64 {
	budget := p.TotalCost + p.BudgetRemaining
	if budget <= 0 {
		return 0
	}
	return p.TotalCost / budget * 100
}

// Contains reports whether the plan selects the given bicycle.
func (p *Plan) Contains(bicycleID int64) bool {
	for _, id := range p.Selected {
		if id == bicycleID {
			return true
		}
	}
	return false
}
