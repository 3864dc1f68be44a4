package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wheelhouse-cycles/wheelhouse/internal/cli"
	"github.com/wheelhouse-cycles/wheelhouse/internal/rental"
)

func rentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rent <bicycle-id>",
		Short: "Rent a bicycle to a member",
		Long: `Rent a bicycle out. The member must have an active membership with spare
rental allowance, and the bicycle must be available.`,
		Args: cobra.ExactArgs(1),
		RunE: runRent,
	}

	cmd.Flags().Int64("member", 0, "member ID renting the bicycle (required)")
	cmd.Flags().Int("days", 1, "rental duration in days")
	_ = cmd.MarkFlagRequired("member")

	return cmd
}

func runRent(cmd *cobra.Command, args []string) error {
	bicycleID, err := parseID(args[0], "bicycle ID")
	if err != nil {
		return err
	}
	memberID, _ := cmd.Flags().GetInt64("member")
	days, _ := cmd.Flags().GetInt("days")

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	svc := rental.NewService(store)
	confirmation, err := svc.Rent(ctx, memberID, bicycleID, days)
	if err != nil {
		return err
	}

	fmt.Println(cli.TitleStyle.Render("Rental confirmation"))
	fmt.Printf("Bicycle:   %d (%s %s)\n", confirmation.BicycleID, confirmation.Brand, confirmation.Type)
	fmt.Printf("Member:    %d\n", confirmation.MemberID)
	fmt.Printf("Rate:      £%.2f/day\n", confirmation.DailyRate)
	fmt.Printf("Start:     %s\n", confirmation.RentalDate.Format("2006-01-02"))
	fmt.Printf("Due back:  %s\n", confirmation.DueDate.Format("2006-01-02"))
	fmt.Println(cli.FormatSuccess("Rental recorded"))

	return nil
}
