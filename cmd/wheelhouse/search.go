package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wheelhouse-cycles/wheelhouse/internal/cli"
	"github.com/wheelhouse-cycles/wheelhouse/internal/service"
)

func searchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search the bicycle catalog",
		Long: `Search bicycles by brand, type or frame size. With no criteria the whole
catalog is listed. A fleet status overview follows the results.`,
		RunE: runSearch,
	}

	cmd.Flags().String("brand", "", "filter by brand")
	cmd.Flags().String("type", "", "filter by type (road, mountain, hybrid, electric, city, single_gear)")
	cmd.Flags().String("frame-size", "", "filter by frame size (S, M, L, XL)")
	cmd.Flags().String("status", "", "filter by status (available, rented, out_of_service)")
	cmd.Flags().Bool("no-chart", false, "skip the status overview chart")

	return cmd
}

func runSearch(cmd *cobra.Command, _ []string) error {
	brand, _ := cmd.Flags().GetString("brand")
	bicycleType, _ := cmd.Flags().GetString("type")
	frameSize, _ := cmd.Flags().GetString("frame-size")
	status, _ := cmd.Flags().GetString("status")
	noChart, _ := cmd.Flags().GetBool("no-chart")

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	bikes, err := store.SearchBicycles(ctx, service.BicycleFilter{
		Brand:     brand,
		Type:      bicycleType,
		FrameSize: frameSize,
		Status:    status,
	})
	if err != nil {
		return fmt.Errorf("failed to search bicycles: %w", err)
	}

	if len(bikes) == 0 {
		fmt.Println(cli.InfoStyle.Render("No bicycles found matching the search criteria."))
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		cli.HeaderStyle.Render("ID"),
		cli.HeaderStyle.Render("Brand"),
		cli.HeaderStyle.Render("Type"),
		cli.HeaderStyle.Render("Frame"),
		cli.HeaderStyle.Render("Rate/day"),
		cli.HeaderStyle.Render("Condition"),
		cli.HeaderStyle.Render("Status"))
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		strings.Repeat("-", 4),
		strings.Repeat("-", 12),
		strings.Repeat("-", 10),
		strings.Repeat("-", 5),
		strings.Repeat("-", 8),
		strings.Repeat("-", 9),
		strings.Repeat("-", 14))

	for _, b := range bikes {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t£%.2f\t%s\t%s\n",
			b.ID, b.Brand, b.Type, b.FrameSize, b.RentalRate, b.ConditionLabel, b.Status)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to render results: %w", err)
	}

	if !noChart {
		counts, err := store.CountByStatus(ctx)
		if err != nil {
			return fmt.Errorf("failed to count fleet status: %w", err)
		}
		fmt.Println()
		fmt.Print(cli.RenderStatusChart(counts))
	}

	return nil
}
