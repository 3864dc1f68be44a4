package model

import (
	"testing"
)

func TestScores_Sort(t *testing.T) {
	tests := []struct {
		name      string
		scores    Scores
		wantOrder []int64
	}{
		{
			name: "higher raw score first",
			scores: Scores{
				{BicycleID: 1, Raw: 0.5, Price: 100},
				{BicycleID: 2, Raw: 0.9, Price: 200},
			},
			wantOrder: []int64{2, 1},
		},
		{
			name: "equal score breaks tie on lower price",
			scores: Scores{
				{BicycleID: 1, Raw: 0.7, Price: 300},
				{BicycleID: 2, Raw: 0.7, Price: 150},
			},
			wantOrder: []int64{2, 1},
		},
		{
			name: "equal score and price breaks tie on lower ID",
			scores: Scores{
				{BicycleID: 9, Raw: 0.7, Price: 150},
				{BicycleID: 3, Raw: 0.7, Price: 150},
			},
			wantOrder: []int64{3, 9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.scores.Sort()
			for i, want := range tt.wantOrder {
				if got := tt.scores[i].BicycleID; got != want {
					t.Errorf("position %d: got bicycle %d, want %d", i, got, want)
				}
				if tt.scores[i].Rank != i+1 {
					t.Errorf("position %d: got rank %d, want %d", i, tt.scores[i].Rank, i+1)
				}
			}
		})
	}
}

func TestScores_Top(t *testing.T) {
	var empty Scores
	if top := empty.Top(); top != nil {
		t.Errorf("expected nil top for empty scores, got %+v", top)
	}

	scores := Scores{
		{BicycleID: 1, Raw: 0.2},
		{BicycleID: 2, Raw: 0.8},
	}
	top := scores.Top()
	if top == nil || top.BicycleID != 2 {
		t.Errorf("expected bicycle 2 on top, got %+v", top)
	}
}
