package model

import "sort"

// Score is the recommendation score computed for one bicycle in one planning
// invocation. Scores are comparable only within that invocation: the weights
// may differ between calls, so scores are never cached across weight sets.
type Score struct {
	BicycleID int64
	Price     float64
	Raw       float64
	Rank      int
}

// Scores is a slice of Score supporting deterministic ordering.
type Scores []Score

// Len implements sort.Interface.
func (s Scores) Len() int { return len(s) }

// Less implements sort.Interface - higher raw scores first, ties broken by
// lower price then lower bicycle ID for determinism.
func (s Scores) Less(i, j int) bool {
	if s[i].Raw != s[j].Raw {
		return s[i].Raw > s[j].Raw
	}
	if s[i].Price != s[j].Price {
		return s[i].Price < s[j].Price
	}
	return s[i].BicycleID < s[j].BicycleID
}

// Swap implements sort.Interface.
func (s Scores) Swap(i, j int) { s[i], s[j] = s[j], s[i] }

// Sort orders the scores and assigns contiguous 1-based ranks.
func (s Scores) Sort() {
	sort.Sort(s)
	for i := range s {
		s[i].Rank = i + 1
	}
}

// Top returns the highest-ranked score, or nil if empty.
func (s Scores) Top() *Score {
	if len(s) == 0 {
		return nil
	}
	s.Sort()
	return &s[0]
}
