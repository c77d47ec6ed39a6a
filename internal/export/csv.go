// Package export renders party statements for external consumption.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/khataflow/khataflow/internal/ledger"
	"github.com/khataflow/khataflow/internal/model"
)

// WriteStatementCSV writes a party statement as CSV: one row per ledger
// entry followed by a totals row. Amounts are written as plain decimal
// strings; display formatting belongs to whoever opens the file.
func WriteStatementCSV(w io.Writer, party string, statement ledger.Statement) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Date", "Party", "Description", "Method", "Credit", "Debit", "Balance"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i := range statement.Entries {
		entry := &statement.Entries[i]

		credit, debit := "", ""
		if entry.Polarity == model.PolarityCredit {
			credit = entry.Amount.String()
		} else {
			debit = entry.Amount.String()
		}

		row := []string{
			entry.Date.Format("2006-01-02"),
			party,
			entry.Description,
			string(entry.PaymentMethod),
			credit,
			debit,
			entry.RunningBalance.String(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	totals := []string{
		"", party, "Total", "",
		statement.TotalCredit.String(),
		statement.TotalDebit.String(),
		statement.FinalBalance.String(),
	}
	if err := cw.Write(totals); err != nil {
		return fmt.Errorf("failed to write CSV totals: %w", err)
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	return nil
}
