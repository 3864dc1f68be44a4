package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/wheelhouse-cycles/wheelhouse/internal/cli"
	"github.com/wheelhouse-cycles/wheelhouse/internal/common"
	"github.com/wheelhouse-cycles/wheelhouse/internal/model"
	"github.com/wheelhouse-cycles/wheelhouse/internal/service"
)

func membersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "members",
		Short: "Manage shop members",
		Long:  `List and register the members who can rent bicycles.`,
	}

	cmd.AddCommand(listMembersCmd())
	cmd.AddCommand(addMemberCmd())

	return cmd
}

func listMembersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all members",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			members, err := store.GetAllMembers(ctx)
			if err != nil {
				return fmt.Errorf("failed to list members: %w", err)
			}
			if len(members) == 0 {
				fmt.Println(cli.InfoStyle.Render("No members found. Use 'wheelhouse members add' to register one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Name"),
				cli.HeaderStyle.Render("Email"),
				cli.HeaderStyle.Render("Membership ends"),
				cli.HeaderStyle.Render("Rental limit"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 4),
				strings.Repeat("-", 20),
				strings.Repeat("-", 24),
				strings.Repeat("-", 15),
				strings.Repeat("-", 12))

			now := time.Now()
			for _, m := range members {
				end := m.MembershipEnd.Format("2006-01-02")
				if !m.MembershipActive(now) {
					end = cli.ErrorStyle.Render(end + " (expired)")
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n", m.ID, m.Name, m.Email, end, m.RentalLimit)
			}
			return nil
		},
	}
}

func addMemberCmd() *cobra.Command {
	var (
		email       string
		phone       string
		endDate     string
		rentalLimit int
	)

	cmd := &cobra.Command{
		Use:   "add <id> <name>",
		Short: "Register a member",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "member ID")
			if err != nil {
				return err
			}

			membershipEnd, err := time.Parse("2006-01-02", endDate)
			if err != nil {
				return fmt.Errorf("invalid membership end date %q (want YYYY-MM-DD)", endDate)
			}

			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			member := &model.Member{
				ID:            id,
				Name:          args[1],
				Email:         email,
				Phone:         phone,
				MembershipEnd: membershipEnd,
				RentalLimit:   rentalLimit,
			}
			if err := registerMember(ctx, store, member); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Registered member %d (%s)", member.ID, member.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "member email")
	cmd.Flags().StringVar(&phone, "phone", "", "member phone")
	cmd.Flags().StringVar(&endDate, "membership-end", "", "membership end date, YYYY-MM-DD (required)")
	cmd.Flags().IntVar(&rentalLimit, "rental-limit", 1, "maximum concurrent rentals")
	_ = cmd.MarkFlagRequired("membership-end")

	return cmd
}

// registerMember saves a new member, refusing to overwrite an existing ID.
func registerMember(ctx context.Context, store service.Storage, member *model.Member) error {
	_, err := store.GetMember(ctx, member.ID)
	if err == nil {
		return common.NewUserError(
			fmt.Sprintf("member %d already exists", member.ID), common.ErrDuplicateEntry)
	}
	if !errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("failed to check for existing member: %w", err)
	}

	if err := store.SaveMember(ctx, member); err != nil {
		return fmt.Errorf("failed to save member: %w", err)
	}
	return nil
}
