package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/khataflow/khataflow/internal/model"
)

// Statement is the chronological ledger for one party with a running
// balance attached to every entry.
type Statement struct {
	Entries      []model.LedgerEntry
	TotalCredit  decimal.Decimal
	TotalDebit   decimal.Decimal
	FinalBalance decimal.Decimal
}

// OwedToBusiness reports the reading of the final balance under the
// business sign convention: a non-negative balance means the party owes
// the business, a negative one means the business owes the party.
func (s *Statement) OwedToBusiness() bool {
	return s.FinalBalance.Sign() >= 0
}

// WithRunningBalance sorts entries ascending by date, keeping the
// builder's emission order as the tie-break, and folds left to right:
// credit entries add to the balance, debit entries subtract. The
// post-entry balance is attached to each entry, and FinalBalance always
// equals the last entry's running balance (zero for an empty ledger).
func WithRunningBalance(entries []model.LedgerEntry) Statement {
	sorted := make([]model.LedgerEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	statement := Statement{
		Entries:      sorted,
		TotalCredit:  decimal.Zero,
		TotalDebit:   decimal.Zero,
		FinalBalance: decimal.Zero,
	}

	balance := decimal.Zero
	for i := range sorted {
		if sorted[i].Polarity == model.PolarityCredit {
			statement.TotalCredit = statement.TotalCredit.Add(sorted[i].Amount)
		} else {
			statement.TotalDebit = statement.TotalDebit.Add(sorted[i].Amount)
		}

		balance = balance.Add(sorted[i].Signed())
		sorted[i].RunningBalance = balance
	}

	statement.FinalBalance = statement.TotalCredit.Sub(statement.TotalDebit)
	return statement
}

// BuildStatement is the full read path: expand the snapshot for one party
// and attach running balances.
func BuildStatement(snapshot model.Snapshot, party string, role model.PartyRole) Statement {
	return WithRunningBalance(Build(snapshot, party, role))
}
