package ledger

import "github.com/shopspring/decimal"

// ResolveSaleAmounts normalizes legacy sale rows where only one of the
// two amount columns is present. The fallback order is total ?? paid ?? 0
// for the total, and its mirror paid ?? total ?? 0 for the paid amount.
// This runs once when the snapshot is read; nothing downstream ever
// branches on field presence, and the inconsistency is never surfaced as
// an error.
func ResolveSaleAmounts(total, paid *decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	switch {
	case total != nil && paid != nil:
		return *total, *paid
	case total != nil:
		return *total, *total
	case paid != nil:
		return *paid, *paid
	default:
		return decimal.Zero, decimal.Zero
	}
}
