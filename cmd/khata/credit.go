package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/khataflow/khataflow/internal/cli"
	"github.com/khataflow/khataflow/internal/ledger"
	"github.com/khataflow/khataflow/internal/model"
)

func creditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credit",
		Short: "Record and manage credit",
		Long: `Track money lent to parties (given) or borrowed from them (taken),
and record repayments until the credit is settled.`,
	}

	cmd.AddCommand(addCreditCmd("give", model.CreditGiven, "Lend money to a party"))
	cmd.AddCommand(addCreditCmd("take", model.CreditTaken, "Borrow money from a party"))
	cmd.AddCommand(payCreditCmd())
	cmd.AddCommand(listCreditsCmd())
	cmd.AddCommand(deleteCreditCmd())

	return cmd
}

func addCreditCmd(use string, direction model.CreditDirection, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " <party>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amountFlag, _ := cmd.Flags().GetString("amount")
			dateFlag, _ := cmd.Flags().GetString("date")
			noteFlag, _ := cmd.Flags().GetString("note")

			amount, err := parseAmount(amountFlag, "credit")
			if err != nil {
				return err
			}

			date, err := parseDate(dateFlag)
			if err != nil {
				return err
			}

			credit := &model.CreditRecord{
				ID:        uuid.NewString(),
				Date:      date,
				Party:     args[0],
				Direction: direction,
				Status:    model.CreditPending,
				Amount:    amount,
				Note:      noteFlag,
			}

			if err := ledger.ValidateCredit(credit); err != nil {
				return fmt.Errorf("invalid credit: %w", err)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.CreateCredit(ctx, credit); err != nil {
				return fmt.Errorf("failed to save credit: %w", err)
			}

			if direction == model.CreditGiven {
				fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Credit recorded: %s owes you %s", credit.Party, amount)))
			} else {
				fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Credit recorded: you owe %s %s", credit.Party, amount)))
			}
			return nil
		},
	}

	cmd.Flags().String("amount", "", "credit amount (required)")
	cmd.Flags().String("date", "", "date YYYY-MM-DD (default: today)")
	cmd.Flags().String("note", "", "free-text note")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func payCreditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pay <credit-id>",
		Short: "Record a repayment against a credit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amountFlag, _ := cmd.Flags().GetString("amount")
			methodFlag, _ := cmd.Flags().GetString("method")
			dateFlag, _ := cmd.Flags().GetString("date")

			amount, err := parseAmount(amountFlag, "payment")
			if err != nil {
				return err
			}

			method, err := parseMethod(methodFlag)
			if err != nil {
				return err
			}

			date, err := parseDate(dateFlag)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			updated, err := store.AddCreditPayment(ctx, args[0], model.CreditPayment{
				ID:            uuid.NewString(),
				Date:          date,
				PaymentMethod: method,
				Amount:        amount,
			})
			if err != nil {
				return fmt.Errorf("failed to record payment: %w", err)
			}

			if updated.Status == model.CreditPaid {
				fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Payment of %s recorded. Credit fully settled.", amount)))
			} else {
				fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Payment of %s recorded. Outstanding: %s", amount, updated.Outstanding())))
			}
			return nil
		},
	}

	cmd.Flags().String("amount", "", "payment amount (required)")
	cmd.Flags().String("method", "cash", "payment method (cash, digital)")
	cmd.Flags().String("date", "", "payment date YYYY-MM-DD (default: today)")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func listCreditsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List credit records",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			pendingOnly, _ := cmd.Flags().GetBool("pending")

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			credits, err := store.ListCredits(ctx)
			if err != nil {
				return fmt.Errorf("failed to list credits: %w", err)
			}

			if pendingOnly {
				filtered := credits[:0]
				for _, credit := range credits {
					if credit.Status == model.CreditPending {
						filtered = append(filtered, credit)
					}
				}
				credits = filtered
			}

			if len(credits) == 0 {
				fmt.Println(cli.InfoStyle.Render("No credit records found."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintln(w, "DATE\tPARTY\tDIRECTION\tAMOUNT\tPAID\tSTATUS\tID")
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 10), strings.Repeat("-", 12), strings.Repeat("-", 9),
				strings.Repeat("-", 8), strings.Repeat("-", 8), strings.Repeat("-", 7), strings.Repeat("-", 36))

			for i := range credits {
				credit := &credits[i]
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					credit.Date.Format("2006-01-02"),
					credit.Party,
					strings.ToLower(string(credit.Direction)),
					credit.Amount,
					credit.PaidAmount,
					strings.ToLower(string(credit.Status)),
					credit.ID)
			}
			return nil
		},
	}

	cmd.Flags().Bool("pending", false, "show only unsettled credits")
	return cmd
}

func deleteCreditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <credit-id>",
		Short: "Delete a credit and its payments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			credit, err := store.GetCredit(ctx, args[0])
			if err != nil {
				return err
			}

			reader := cli.NewNonBlockingReader(os.Stdin)
			ok, err := cli.Confirm(ctx, reader, os.Stdout,
				fmt.Sprintf("Delete credit of %s for %s along with %d payment(s)?",
					credit.Amount, credit.Party, len(credit.Payments)))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println(cli.InfoStyle.Render("Cancelled."))
				return nil
			}

			if err := store.DeleteCredit(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete credit: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render("✓ Credit deleted"))
			return nil
		},
	}
}
