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
	"github.com/khataflow/khataflow/internal/note"
)

func expenseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expense",
		Short: "Record and manage expenses",
		Long:  `Add, list, and delete vendor expenses.`,
	}

	cmd.AddCommand(addExpenseCmd())
	cmd.AddCommand(listExpensesCmd())
	cmd.AddCommand(deleteExpenseCmd())

	return cmd
}

func addExpenseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an expense",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			vendor, _ := cmd.Flags().GetString("vendor")
			amountFlag, _ := cmd.Flags().GetString("amount")
			category, _ := cmd.Flags().GetString("category")
			dateFlag, _ := cmd.Flags().GetString("date")
			noteFlag, _ := cmd.Flags().GetString("note")

			amount, err := parseAmount(amountFlag, "expense")
			if err != nil {
				return err
			}

			date, err := parseDate(dateFlag)
			if err != nil {
				return err
			}

			if category == "" {
				category = note.InferCategory(vendor + " " + noteFlag)
			}

			expense := &model.ExpenseRecord{
				ID:         uuid.NewString(),
				Date:       date,
				VendorName: vendor,
				Category:   category,
				Amount:     amount,
				Note:       noteFlag,
			}

			if err := ledger.ValidateExpense(expense); err != nil {
				return fmt.Errorf("invalid expense: %w", err)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.CreateExpense(ctx, expense); err != nil {
				return fmt.Errorf("failed to save expense: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Expense recorded: %s (%s)", amount, category)))
			return nil
		},
	}

	cmd.Flags().String("vendor", "", "vendor name")
	cmd.Flags().String("amount", "", "expense amount (required)")
	cmd.Flags().String("category", "", "category (default: inferred from keywords)")
	cmd.Flags().String("date", "", "expense date YYYY-MM-DD (default: today)")
	cmd.Flags().String("note", "", "free-text note")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func listExpensesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all expenses",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			expenses, err := store.ListExpenses(ctx)
			if err != nil {
				return fmt.Errorf("failed to list expenses: %w", err)
			}

			if len(expenses) == 0 {
				fmt.Println(cli.InfoStyle.Render("No expenses recorded. Use 'khata expense add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintln(w, "DATE\tVENDOR\tCATEGORY\tAMOUNT\tID")
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 10), strings.Repeat("-", 12), strings.Repeat("-", 10),
				strings.Repeat("-", 8), strings.Repeat("-", 36))

			for i := range expenses {
				expense := &expenses[i]
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					expense.Date.Format("2006-01-02"),
					expense.VendorName,
					expense.Category,
					expense.Amount,
					expense.ID)
			}
			return nil
		},
	}
}

func deleteExpenseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <expense-id>",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteExpense(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete expense: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render("✓ Expense deleted"))
			return nil
		},
	}
}
