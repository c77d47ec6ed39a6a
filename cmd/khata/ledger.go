package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/khataflow/khataflow/internal/cli"
	"github.com/khataflow/khataflow/internal/ledger"
	"github.com/khataflow/khataflow/internal/model"
)

func ledgerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger <party>",
		Short: "Show a party's statement with running balance",
		Long: `Rebuild the full statement for one party from stored sales, expenses,
and credits, sorted by date with a running balance on every line.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			roleFlag, _ := cmd.Flags().GetString("role")
			role, err := parseRole(roleFlag)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			snapshot, err := store.GetSnapshot(ctx)
			if err != nil {
				return fmt.Errorf("failed to load records: %w", err)
			}

			party := args[0]
			statement := ledger.BuildStatement(*snapshot, party, role)

			fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Ledger: %s (%s)", party, role)))

			if len(statement.Entries) == 0 {
				fmt.Println(cli.InfoStyle.Render("No transactions found for this party."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

			fmt.Fprintln(w, "DATE\tDESCRIPTION\tMETHOD\tCREDIT\tDEBIT\tBALANCE")
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 10), strings.Repeat("-", 24), strings.Repeat("-", 7),
				strings.Repeat("-", 8), strings.Repeat("-", 8), strings.Repeat("-", 8))

			for i := range statement.Entries {
				entry := &statement.Entries[i]
				credit, debit := "", ""
				if entry.Polarity == model.PolarityCredit {
					credit = entry.Amount.String()
				} else {
					debit = entry.Amount.String()
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					entry.Date.Format("2006-01-02"),
					entry.Description,
					strings.ToLower(string(entry.PaymentMethod)),
					credit,
					debit,
					entry.RunningBalance)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Println()
			fmt.Printf("Total credit: %s  Total debit: %s\n", statement.TotalCredit, statement.TotalDebit)
			fmt.Println(summaryLine(&statement, party, role))
			return nil
		},
	}

	cmd.Flags().String("role", "customer", "party role (customer, vendor)")
	return cmd
}

// summaryLine renders the final-balance reading under the business sign
// convention. A customer with a non-negative balance owes the business;
// the same sign for a vendor is a neutral balance, since vendors are not
// debtors. A negative balance always reads "you owe".
func summaryLine(statement *ledger.Statement, party string, role model.PartyRole) string {
	if !statement.OwedToBusiness() {
		return cli.DebitStyle.Render(fmt.Sprintf("You owe %s %s", party, statement.FinalBalance.Abs()))
	}
	if role == model.RoleVendor {
		return cli.CreditStyle.Render(fmt.Sprintf("Balance with %s: %s", party, statement.FinalBalance))
	}
	return cli.CreditStyle.Render(fmt.Sprintf("%s owes you %s", party, statement.FinalBalance))
}

func parseRole(s string) (model.PartyRole, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "customer", "":
		return model.RoleCustomer, nil
	case "vendor", "supplier":
		return model.RoleVendor, nil
	default:
		return "", fmt.Errorf("unknown role %q (use customer or vendor)", s)
	}
}
