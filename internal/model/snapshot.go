package model

// Snapshot is a full in-memory view of the record store at a point in
// time. The ledger core only ever reads snapshots; it never mutates the
// underlying records or requests partial pages.
type Snapshot struct {
	Sales    []SaleRecord
	Expenses []ExpenseRecord
	Credits  []CreditRecord
}
