package planner

import "errors"

// Validation errors surfaced before any computation begins. None are
// retryable: they stem from invalid input, not transient conditions.
var (
	// ErrEmptyCatalog means no eligible bicycles remained after filtering.
	ErrEmptyCatalog = errors.New("no eligible bicycles in catalog")
	// ErrInvalidWeight means a negative preference weight was supplied.
	ErrInvalidWeight = errors.New("invalid preference weight")
	// ErrNegativeBudget means the supplied budget was below zero. A budget
	// too small to afford anything is not an error; it yields an empty plan.
	ErrNegativeBudget = errors.New("budget must be non-negative")
)
