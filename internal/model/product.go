package model

import "github.com/shopspring/decimal"

// Product is a catalog item used by the note parser to derive sale
// amounts from quantity shorthand like "2 milk".
type Product struct {
	ID        string
	Name      string
	UnitPrice decimal.Decimal
}
