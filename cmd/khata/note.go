package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/khataflow/khataflow/internal/cli"
	"github.com/khataflow/khataflow/internal/ledger"
	"github.com/khataflow/khataflow/internal/model"
	"github.com/khataflow/khataflow/internal/note"
	"github.com/khataflow/khataflow/internal/service"
)

func noteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note <text>...",
		Short: "Record a transaction from a free-text note",
		Long: `Parse shorthand like "Sold 500 to Rahul" or "Spent 50*4 on fuel" into
a structured sale, expense, or credit, preview it, and save on confirmation.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			dateFlag, _ := cmd.Flags().GetString("date")
			yes, _ := cmd.Flags().GetBool("yes")

			date, err := parseDate(dateFlag)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			catalog, err := store.ListProducts(ctx)
			if err != nil {
				return fmt.Errorf("failed to load product catalog: %w", err)
			}

			text := strings.Join(args, " ")
			parsed, err := note.Parse(text, catalog)
			if err != nil {
				var failure *note.ParseFailure
				if errors.As(err, &failure) {
					fmt.Println(cli.ErrorStyle.Render("Could not understand that note."))
					fmt.Println(cli.InfoStyle.Render("Try phrases like:"))
					for _, phrase := range note.ExamplePhrases {
						fmt.Printf("  %s\n", cli.SubtleStyle.Render(phrase))
					}
					return nil
				}
				return err
			}

			printParsedPreview(parsed, date)

			if !yes {
				reader := cli.NewNonBlockingReader(os.Stdin)
				ok, err := cli.Confirm(ctx, reader, os.Stdout, "Save this transaction?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println(cli.InfoStyle.Render("Cancelled."))
					return nil
				}
			}

			if err := saveParsed(ctx, store, parsed, date, text); err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render("✓ Transaction saved"))
			return nil
		},
	}

	cmd.Flags().String("date", "", "date YYYY-MM-DD (default: today)")
	cmd.Flags().BoolP("yes", "y", false, "save without confirmation")
	return cmd
}

func printParsedPreview(parsed *model.ParsedTransaction, date time.Time) {
	fmt.Println(cli.TitleStyle.Render("Parsed transaction"))

	party := parsed.Party
	if party == "" {
		party = note.DefaultParty
	}

	fmt.Printf("  Kind:    %s\n", strings.ToLower(string(parsed.Kind)))
	fmt.Printf("  Party:   %s\n", party)
	fmt.Printf("  Amount:  %s\n", cli.CreditStyle.Render(parsed.Amount.String()))
	fmt.Printf("  Date:    %s\n", date.Format("2006-01-02"))
	switch parsed.Kind {
	case model.KindSale:
		fmt.Printf("  Method:  %s\n", strings.ToLower(string(parsed.PaymentMethod)))
	case model.KindExpense:
		fmt.Printf("  Category: %s\n", parsed.Category)
	case model.KindCredit:
		fmt.Printf("  Direction: %s\n", strings.ToLower(string(parsed.CreditDirection)))
	}
}

// saveParsed persists the record the preview promised. The party stored
// is always the one the preview showed: a note naming nobody gets the
// default party for every transaction kind.
func saveParsed(ctx context.Context, store service.Storage, parsed *model.ParsedTransaction, date time.Time, text string) error {
	party := parsed.Party
	if party == "" {
		party = note.DefaultParty
	}

	switch parsed.Kind {
	case model.KindSale:
		sale := &model.SaleRecord{
			ID:            uuid.NewString(),
			Date:          date,
			CustomerName:  party,
			Note:          text,
			PaymentMethod: parsed.PaymentMethod,
			TotalAmount:   parsed.Amount,
			PaidAmount:    parsed.Amount,
		}
		if err := ledger.ValidateSale(sale); err != nil {
			return fmt.Errorf("invalid sale: %w", err)
		}
		return store.CreateSale(ctx, sale)

	case model.KindExpense:
		expense := &model.ExpenseRecord{
			ID:         uuid.NewString(),
			Date:       date,
			VendorName: party,
			Category:   parsed.Category,
			Note:       text,
			Amount:     parsed.Amount,
		}
		if err := ledger.ValidateExpense(expense); err != nil {
			return fmt.Errorf("invalid expense: %w", err)
		}
		return store.CreateExpense(ctx, expense)

	case model.KindCredit:
		credit := &model.CreditRecord{
			ID:        uuid.NewString(),
			Date:      date,
			Party:     party,
			Direction: parsed.CreditDirection,
			Status:    model.CreditPending,
			Amount:    parsed.Amount,
			Note:      text,
		}
		if err := ledger.ValidateCredit(credit); err != nil {
			return fmt.Errorf("invalid credit: %w", err)
		}
		return store.CreateCredit(ctx, credit)

	default:
		return fmt.Errorf("unknown transaction kind %q", parsed.Kind)
	}
}
