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

func saleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sale",
		Short: "Record and manage sales",
		Long:  `Add, list, and delete sale records. A partially paid sale leaves the remainder on the customer's ledger.`,
	}

	cmd.AddCommand(addSaleCmd())
	cmd.AddCommand(listSalesCmd())
	cmd.AddCommand(deleteSaleCmd())

	return cmd
}

func addSaleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a sale",
		Long: `Record a sale. When --paid is omitted the sale is treated as fully paid.
A partial payment requires a customer name; the unpaid remainder shows up
on the customer's ledger until it is settled.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			customer, _ := cmd.Flags().GetString("customer")
			totalFlag, _ := cmd.Flags().GetString("total")
			paidFlag, _ := cmd.Flags().GetString("paid")
			methodFlag, _ := cmd.Flags().GetString("method")
			dateFlag, _ := cmd.Flags().GetString("date")
			noteFlag, _ := cmd.Flags().GetString("note")

			total, err := parseAmount(totalFlag, "total")
			if err != nil {
				return err
			}

			paid := total
			if paidFlag != "" {
				if paid, err = parseAmount(paidFlag, "paid"); err != nil {
					return err
				}
			}

			method, err := parseMethod(methodFlag)
			if err != nil {
				return err
			}

			date, err := parseDate(dateFlag)
			if err != nil {
				return err
			}

			sale := &model.SaleRecord{
				ID:            uuid.NewString(),
				Date:          date,
				CustomerName:  customer,
				PaymentMethod: method,
				TotalAmount:   total,
				PaidAmount:    paid,
				Note:          noteFlag,
			}

			if err := ledger.ValidateSale(sale); err != nil {
				return fmt.Errorf("invalid sale: %w", err)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.CreateSale(ctx, sale); err != nil {
				return fmt.Errorf("failed to save sale: %w", err)
			}

			outstanding := sale.Outstanding()
			if outstanding.IsPositive() {
				fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Sale recorded: %s total, %s paid", total, paid)))
				fmt.Println(cli.WarningStyle.Render(fmt.Sprintf("  %s owes %s", customer, outstanding)))
			} else {
				fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Sale recorded: %s, fully paid", total)))
			}
			return nil
		},
	}

	cmd.Flags().String("customer", "", "customer name (required for partial payments)")
	cmd.Flags().String("total", "", "total sale amount (required)")
	cmd.Flags().String("paid", "", "amount paid now (default: total)")
	cmd.Flags().String("method", "cash", "payment method (cash, digital)")
	cmd.Flags().String("date", "", "sale date YYYY-MM-DD (default: today)")
	cmd.Flags().String("note", "", "free-text note")
	_ = cmd.MarkFlagRequired("total")

	return cmd
}

func listSalesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all sales",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			sales, err := store.ListSales(ctx)
			if err != nil {
				return fmt.Errorf("failed to list sales: %w", err)
			}

			if len(sales) == 0 {
				fmt.Println(cli.InfoStyle.Render("No sales recorded. Use 'khata sale add' or 'khata note' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintln(w, "DATE\tCUSTOMER\tTOTAL\tPAID\tDUE\tMETHOD\tID")
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 10), strings.Repeat("-", 12), strings.Repeat("-", 8),
				strings.Repeat("-", 8), strings.Repeat("-", 8), strings.Repeat("-", 7), strings.Repeat("-", 36))

			for i := range sales {
				sale := &sales[i]
				customer := sale.CustomerName
				if customer == "" {
					customer = note.DefaultParty
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					sale.Date.Format("2006-01-02"),
					customer,
					sale.TotalAmount,
					sale.PaidAmount,
					sale.Outstanding(),
					sale.PaymentMethod,
					sale.ID)
			}
			return nil
		},
	}
}

func deleteSaleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <sale-id>",
		Short: "Delete a sale",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			sale, err := store.GetSale(ctx, args[0])
			if err != nil {
				return err
			}

			reader := cli.NewNonBlockingReader(os.Stdin)
			ok, err := cli.Confirm(ctx, reader, os.Stdout,
				fmt.Sprintf("Delete sale of %s on %s?", sale.TotalAmount, sale.Date.Format("2006-01-02")))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println(cli.InfoStyle.Render("Cancelled."))
				return nil
			}

			if err := store.DeleteSale(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete sale: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render("✓ Sale deleted"))
			return nil
		},
	}
}
