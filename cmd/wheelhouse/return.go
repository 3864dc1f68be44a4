package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wheelhouse-cycles/wheelhouse/internal/cli"
	"github.com/wheelhouse-cycles/wheelhouse/internal/rental"
)

func returnCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "return <bicycle-id>",
		Short: "Return a rented bicycle",
		Long: `Close a rental: post any late fee (daily rate plus a £5/day surcharge for
overdue days) and an optional damage charge. A damaged bicycle is taken out
of service.`,
		Args: cobra.ExactArgs(1),
		RunE: runReturn,
	}

	cmd.Flags().Float64("damage-charge", 0, "damage charge to post, if any")

	return cmd
}

func runReturn(cmd *cobra.Command, args []string) error {
	bicycleID, err := parseID(args[0], "bicycle ID")
	if err != nil {
		return err
	}
	damageCharge, _ := cmd.Flags().GetFloat64("damage-charge")

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	svc := rental.NewService(store)
	receipt, err := svc.Return(ctx, bicycleID, damageCharge)
	if err != nil {
		return err
	}

	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Return completed for bicycle %d", receipt.BicycleID)))
	fmt.Printf("Rate:      £%.2f/day\n", receipt.DailyRate)
	fmt.Printf("Rented:    %s\n", receipt.RentalDate.Format("2006-01-02"))
	fmt.Printf("Due back:  %s\n", receipt.DueDate.Format("2006-01-02"))
	fmt.Printf("Returned:  %s\n", receipt.ReturnedAt.Format("2006-01-02"))

	charges := receipt.Charges
	if charges.LateDays > 0 {
		fmt.Println(cli.FormatWarning(fmt.Sprintf(
			"Late fee for %d overdue days: £%.2f (includes £%.2f surcharge)",
			charges.LateDays, charges.LateFee, charges.Surcharge)))
	} else {
		fmt.Println(cli.FormatSuccess("Returned on time, no late fee"))
	}
	if receipt.Damaged {
		fmt.Printf("Damage charge: £%.2f\n", charges.DamageCharge)
		fmt.Println(cli.FormatWarning("Bicycle marked as damaged and taken out of service"))
	} else {
		fmt.Println(cli.FormatSuccess("Bicycle is available again"))
	}
	fmt.Printf("Total amount due: £%.2f\n", charges.Total())

	return nil
}

// parseID parses a positive integer command argument.
func parseID(s, name string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, s)
	}
	return id, nil
}
