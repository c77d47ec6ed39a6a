package model

import "github.com/shopspring/decimal"

// TransactionKind classifies what a parsed magic note describes.
type TransactionKind string

// Transaction kind constants.
const (
	KindSale    TransactionKind = "SALE"
	KindExpense TransactionKind = "EXPENSE"
	KindCredit  TransactionKind = "CREDIT"
)

// ParsedTransaction is the structured result of parsing a free-text magic
// note. It is consumed once by the caller to build a sale, expense, or
// credit record, then discarded.
type ParsedTransaction struct {
	Kind            TransactionKind
	Party           string // empty when the note named nobody
	Category        string // expenses only
	Note            string
	PaymentMethod   PaymentMethod
	CreditDirection CreditDirection // credits only
	Amount          decimal.Decimal
}
