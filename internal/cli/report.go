package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/wheelhouse-cycles/wheelhouse/internal/model"
)

// RenderPlanReport formats a purchase plan as a ranked table with totals and
// the strategy tag. The caller supplies the catalog so selected IDs can be
// shown with their details.
func RenderPlanReport(plan *model.Plan, catalog []model.Bicycle, budget float64) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(BikeIcon + " Purchase plan"))
	b.WriteString("\n")

	if plan.Count() == 0 {
		b.WriteString(InfoStyle.Render("No bicycles fit within the budget."))
		b.WriteString("\n")
		fmt.Fprintf(&b, "Budget remaining: £%.2f\n", plan.BudgetRemaining)
		return b.String()
	}

	byID := make(map[int64]model.Bicycle, len(catalog))
	for _, bike := range catalog {
		byID[bike.ID] = bike
	}

	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		HeaderStyle.Render("#"),
		HeaderStyle.Render("ID"),
		HeaderStyle.Render("Brand"),
		HeaderStyle.Render("Type"),
		HeaderStyle.Render("Price"))

	for i, id := range plan.Selected {
		bike, ok := byID[id]
		if !ok {
			fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\n", i+1, id, "?", "?", "?")
			continue
		}
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t£%.2f\n",
			i+1, bike.ID, bike.Brand, bike.Type, bike.Price)
	}
	_ = w.Flush()

	fmt.Fprintf(&b, "\nSelected: %d of %d candidates\n", plan.Count(), plan.CandidatesConsidered)
	fmt.Fprintf(&b, "Total cost: £%.2f of £%.2f budget (%.1f%% used)\n",
		plan.TotalCost, budget, plan.BudgetUtilization())
	fmt.Fprintf(&b, "Budget remaining: £%.2f\n", plan.BudgetRemaining)
	fmt.Fprintf(&b, "Total score: %.3f\n", plan.TotalScore)

	strategy := fmt.Sprintf("Strategy: %s", plan.Strategy)
	if plan.Strategy == model.StrategyApprox {
		strategy += " (approximate; optimality not guaranteed)"
	}
	b.WriteString(SubtleStyle.Render(strategy))
	b.WriteString("\n")

	return b.String()
}
