package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wheelhouse-cycles/wheelhouse/internal/catalog"
	"github.com/wheelhouse-cycles/wheelhouse/internal/cli"
	"github.com/wheelhouse-cycles/wheelhouse/internal/model"
	"github.com/wheelhouse-cycles/wheelhouse/internal/planner"
	"github.com/wheelhouse-cycles/wheelhouse/internal/service"
)

func planCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Recommend bicycles to buy under a budget",
		Long: `Score the available catalog by condition, popularity and price efficiency,
then pick the purchase set that maximizes total score within the budget.

Examples:
  # Plan a £500 purchase
  wheelhouse plan --budget 500

  # Favour popular bicycles, mountain bikes only
  wheelhouse plan --budget 500 --weight-popularity 2 --type mountain

  # At most three bicycles
  wheelhouse plan --budget 500 --max-items 3`,
		RunE: runPlan,
	}

	cmd.Flags().Float64("budget", 0, "purchase budget in pounds (required)")
	cmd.Flags().Float64("weight-condition", 1, "weight for bicycle condition (default from planner.weights.condition)")
	cmd.Flags().Float64("weight-popularity", 1, "weight for rental popularity (default from planner.weights.popularity)")
	cmd.Flags().Float64("weight-price", 1, "weight for price efficiency (default from planner.weights.price)")
	cmd.Flags().String("type", "", "only consider this bicycle type")
	cmd.Flags().String("frame-size", "", "only consider this frame size")
	cmd.Flags().Float64("min-condition", 0, "minimum condition score (0-1)")
	cmd.Flags().Int("max-items", 0, "maximum number of bicycles to buy (0 = unlimited)")
	_ = cmd.MarkFlagRequired("budget")

	return cmd
}

func runPlan(cmd *cobra.Command, _ []string) error {
	budget, _ := cmd.Flags().GetFloat64("budget")
	// Config-file weight defaults are only readable after initConfig has
	// run, so resolve them here rather than at flag registration.
	wCondition := weightValue(cmd, "weight-condition", "planner.weights.condition")
	wPopularity := weightValue(cmd, "weight-popularity", "planner.weights.popularity")
	wPrice := weightValue(cmd, "weight-price", "planner.weights.price")
	bicycleType, _ := cmd.Flags().GetString("type")
	frameSize, _ := cmd.Flags().GetString("frame-size")
	minCondition, _ := cmd.Flags().GetFloat64("min-condition")
	maxItems, _ := cmd.Flags().GetInt("max-items")

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	// The planner works on an immutable snapshot, never the live store.
	bikes, err := store.SearchBicycles(ctx, service.BicycleFilter{})
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	rentalCounts, err := store.RentalCounts(ctx)
	if err != nil {
		return fmt.Errorf("failed to load rental history: %w", err)
	}
	snapshot := catalog.BuildSnapshot(bikes, rentalCounts)

	p := planner.NewWithConfig(planner.Config{
		MaxDPStates: viper.GetInt("planner.max_dp_states"),
	})
	plan, err := p.Plan(ctx, snapshot, planner.Request{
		Weights: model.Weights{
			Condition:       wCondition,
			Popularity:      wPopularity,
			PriceEfficiency: wPrice,
		},
		Budget:   budget,
		MaxItems: maxItems,
		Filter: planner.Filter{
			Type:         model.BicycleType(bicycleType),
			FrameSize:    model.FrameSize(frameSize),
			MinCondition: minCondition,
		},
	})
	if errors.Is(err, planner.ErrEmptyCatalog) {
		if plan.CatalogEmpty {
			fmt.Println(cli.InfoStyle.Render("The catalog is empty. Run 'wheelhouse import' first."))
		} else {
			fmt.Println(cli.InfoStyle.Render("No available bicycles match the given filters."))
		}
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Print(cli.RenderPlanReport(&plan, snapshot, budget))
	return nil
}

// weightValue prefers an explicitly set flag over the configured default.
func weightValue(cmd *cobra.Command, flag, key string) float64 {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetFloat64(flag)
		return v
	}
	return viper.GetFloat64(key)
}
