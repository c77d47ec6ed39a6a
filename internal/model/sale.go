// Package model defines the core domain models used throughout the application.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod indicates how money changed hands.
type PaymentMethod string

// Payment method constants.
const (
	PaymentCash    PaymentMethod = "CASH"
	PaymentDigital PaymentMethod = "DIGITAL"
)

// SaleRecord represents a single sale to a customer. A sale may be fully
// paid, partially paid, or unpaid at the time it is recorded; the unpaid
// remainder is derived on every ledger read, never persisted separately.
type SaleRecord struct {
	Date          time.Time
	ID            string
	CustomerName  string
	Note          string
	PaymentMethod PaymentMethod
	TotalAmount   decimal.Decimal
	PaidAmount    decimal.Decimal
}

// Outstanding returns the unpaid remainder of the sale.
func (s *SaleRecord) Outstanding() decimal.Decimal {
	return s.TotalAmount.Sub(s.PaidAmount)
}

// FullyPaid reports whether the sale was settled at or above its total.
func (s *SaleRecord) FullyPaid() bool {
	return s.PaidAmount.GreaterThanOrEqual(s.TotalAmount)
}
