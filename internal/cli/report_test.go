package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wheelhouse-cycles/wheelhouse/internal/model"
)

func TestRenderPlanReport(t *testing.T) {
	catalog := []model.Bicycle{
		{ID: 1, Brand: "Trek", Type: model.TypeRoad, Price: 200},
		{ID: 2, Brand: "Giant", Type: model.TypeHybrid, Price: 150},
	}
	plan := &model.Plan{
		Strategy:             model.StrategyDP,
		Selected:             []int64{2, 1},
		TotalCost:            350,
		TotalScore:           1.45,
		BudgetRemaining:      50,
		CandidatesConsidered: 2,
	}

	out := RenderPlanReport(plan, catalog, 400)
	assert.Contains(t, out, "Trek")
	assert.Contains(t, out, "Giant")
	assert.Contains(t, out, "£350.00")
	assert.Contains(t, out, "£50.00")
	assert.Contains(t, out, "Selected: 2 of 2 candidates")
	assert.NotContains(t, out, "optimality not guaranteed")

	// Giant ranks first, Trek second.
	assert.Less(t, strings.Index(out, "Giant"), strings.Index(out, "Trek"))
}

func TestRenderPlanReport_EmptyPlan(t *testing.T) {
	plan := &model.Plan{BudgetRemaining: 25}

	out := RenderPlanReport(plan, nil, 25)
	assert.Contains(t, out, "No bicycles fit within the budget")
	assert.Contains(t, out, "£25.00")
}

func TestRenderPlanReport_ApproxDisclaimer(t *testing.T) {
	catalog := []model.Bicycle{{ID: 1, Brand: "Trek", Type: model.TypeRoad, Price: 100}}
	plan := &model.Plan{
		Strategy:             model.StrategyApprox,
		Selected:             []int64{1},
		TotalCost:            100,
		CandidatesConsidered: 1,
	}

	out := RenderPlanReport(plan, catalog, 100)
	assert.Contains(t, out, "optimality not guaranteed")
}

func TestRenderStatusChart(t *testing.T) {
	out := RenderStatusChart(map[model.Status]int{
		model.StatusAvailable:    8,
		model.StatusRented:       2,
		model.StatusOutOfService: 1,
	})

	assert.Contains(t, out, "Available")
	assert.Contains(t, out, "Rented")
	assert.Contains(t, out, "Out of service")
	assert.Contains(t, out, "8")

	// Render order is fixed regardless of map iteration.
	assert.Less(t, strings.Index(out, "Available"), strings.Index(out, "Rented"))
	assert.Less(t, strings.Index(out, "Rented"), strings.Index(out, "Out of service"))
}

func TestRenderStatusChart_Empty(t *testing.T) {
	out := RenderStatusChart(nil)
	assert.Contains(t, out, "Fleet status")
}
