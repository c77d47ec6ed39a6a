package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseRecord represents money paid out to a vendor.
type ExpenseRecord struct {
	Date       time.Time
	ID         string
	VendorName string
	Category   string
	Note       string
	Amount     decimal.Decimal
}
