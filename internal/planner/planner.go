package planner

import (
	"context"
	"log/slog"

	"github.com/wheelhouse-cycles/wheelhouse/internal/model"
)

// Filter narrows the catalog to the buyer's preferences before scoring.
// Zero values leave the corresponding criterion unconstrained.
type Filter struct {
	Type         model.BicycleType
	FrameSize    model.FrameSize
	MinCondition float64
}

// Matches reports whether a bicycle satisfies the filter criteria. Only
// available bicycles are ever eligible for purchase planning.
func (f Filter) Matches(b model.Bicycle) bool {
	if !b.Available() {
		return false
	}
	if f.Type != "" && b.Type != f.Type {
		return false
	}
	if f.FrameSize != "" && b.FrameSize != f.FrameSize {
		return false
	}
	if f.MinCondition > 0 && b.Condition < f.MinCondition {
		return false
	}
	return true
}

// Request carries the buyer input for one planning invocation.
type Request struct {
	Filter   Filter
	Weights  model.Weights
	Budget   float64
	MaxItems int
}

// Planner wires filtering, scoring and selection into a single run over an
// immutable catalog snapshot. It holds no mutable state, so concurrent
// invocations on independent snapshots need no locking.
type Planner struct {
	cfg Config
}

// New creates a planner with the default selector configuration.
func New() *Planner {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a planner with a custom selector configuration.
func NewWithConfig(cfg Config) *Planner {
	if cfg.MaxDPStates <= 0 {
		cfg.MaxDPStates = DefaultConfig().MaxDPStates
	}
	return &Planner{cfg: cfg}
}

// Plan filters the snapshot, scores the eligible bicycles and selects the
// purchase set. The snapshot is read-only: the planner never mutates catalog
// state.
//
// When filtering leaves zero candidates the returned error is ErrEmptyCatalog
// in both the "no catalog data" and "filters excluded everything" cases; the
// plan's CatalogEmpty diagnostic tells the two apart.
func (p *Planner) Plan(ctx context.Context, snapshot []model.Bicycle, req Request) (model.Plan, error) {
	if err := ctx.Err(); err != nil {
		return model.Plan{}, err
	}

	// All input validation happens before any computation.
	if req.Budget < 0 {
		return model.Plan{}, ErrNegativeBudget
	}
	if err := req.Weights.Validate(); err != nil {
		return model.Plan{}, ErrInvalidWeight
	}

	eligible := make([]model.Bicycle, 0, len(snapshot))
	for _, b := range snapshot {
		if req.Filter.Matches(b) {
			eligible = append(eligible, b)
		}
	}

	if len(eligible) == 0 {
		return model.Plan{CatalogEmpty: len(snapshot) == 0}, ErrEmptyCatalog
	}

	scores, err := ScoreAll(eligible, req.Weights)
	if err != nil {
		return model.Plan{}, err
	}

	plan, err := Select(scores, req.Budget, req.MaxItems, p.cfg)
	if err != nil {
		return model.Plan{}, err
	}
	plan.CandidatesConsidered = len(eligible)

	slog.Debug("planning run complete",
		"candidates", plan.CandidatesConsidered,
		"selected", plan.Count(),
		"strategy", plan.Strategy,
		"total_cost", plan.TotalCost,
		"budget_remaining", plan.BudgetRemaining)

	return plan, nil
}
