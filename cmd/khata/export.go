package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/khataflow/khataflow/internal/cli"
	"github.com/khataflow/khataflow/internal/export"
	"github.com/khataflow/khataflow/internal/ledger"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <party>",
		Short: "Export a party's statement to CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			roleFlag, _ := cmd.Flags().GetString("role")
			output, _ := cmd.Flags().GetString("output")

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

			out := os.Stdout
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				defer func() { _ = f.Close() }()
				out = f
			}

			if err := export.WriteStatementCSV(out, party, statement); err != nil {
				return fmt.Errorf("failed to write CSV: %w", err)
			}

			if output != "" {
				fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Exported %d entries to %s", len(statement.Entries), output)))
			}
			return nil
		},
	}

	cmd.Flags().String("role", "customer", "party role (customer, vendor)")
	cmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	return cmd
}
