package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/khataflow/khataflow/internal/cli"
	"github.com/khataflow/khataflow/internal/model"
	"github.com/khataflow/khataflow/internal/ofx"
)

func importOFXCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-ofx <files>...",
		Short: "Import bank debits as expenses from OFX/QFX files",
		Long: `Import debit transactions from OFX or QFX files exported from your bank.
Each debit becomes an expense record with an inferred category; deposits
are skipped. Transactions already imported are deduplicated by bank ID.

Examples:
  khata import-ofx ~/Downloads/statement_jan.qfx
  khata import-ofx ~/Downloads/*.ofx --dry-run`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImportOFX,
	}

	cmd.Flags().BoolP("dry-run", "d", false, "preview import without saving")
	return cmd
}

func runImportOFX(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	var allFiles []string
	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err == nil {
				allFiles = append(allFiles, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
		} else {
			allFiles = append(allFiles, matches...)
		}
	}

	if len(allFiles) == 0 {
		return fmt.Errorf("no files found to import")
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	existing, err := store.ListExpenses(ctx)
	if err != nil {
		return fmt.Errorf("failed to list expenses: %w", err)
	}
	seen := make(map[string]bool, len(existing))
	for i := range existing {
		seen[existing[i].ID] = true
	}

	parser := ofx.NewParser()

	var pending []model.ExpenseRecord
	for _, filePath := range allFiles {
		f, err := os.Open(filePath)
		if err != nil {
			slog.Error("Failed to open file", "file", filePath, "error", err)
			continue
		}

		expenses, err := parser.ParseFile(ctx, f)
		_ = f.Close()
		if err != nil {
			slog.Error("Failed to parse OFX file", "file", filePath, "error", err)
			continue
		}

		added := 0
		for i := range expenses {
			if seen[expenses[i].ID] {
				continue
			}
			seen[expenses[i].ID] = true
			pending = append(pending, expenses[i])
			added++
		}

		slog.Info("Processed file",
			"file", filepath.Base(filePath),
			"debits_found", len(expenses),
			"new", added,
			"duplicates", len(expenses)-added)
	}

	if len(pending) == 0 {
		fmt.Println(cli.InfoStyle.Render("Nothing new to import."))
		return nil
	}

	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Importing %d expense(s)", len(pending))))
	for i := range pending {
		expense := &pending[i]
		fmt.Printf("  %s  %s  %s  %s\n",
			expense.Date.Format("2006-01-02"),
			expense.VendorName,
			expense.Category,
			cli.DebitStyle.Render(expense.Amount.String()))
	}

	if dryRun {
		fmt.Println(cli.InfoStyle.Render("Dry run complete. No data saved."))
		return nil
	}

	for i := range pending {
		if err := store.CreateExpense(ctx, &pending[i]); err != nil {
			return fmt.Errorf("failed to save expense %s: %w", pending[i].ID, err)
		}
	}

	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Imported %d expense(s)", len(pending))))
	return nil
}
