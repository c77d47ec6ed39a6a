package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditDirection indicates which way a credit obligation runs.
type CreditDirection string

// Credit direction constants.
const (
	// CreditGiven means the business lent money or goods; the party owes the business.
	CreditGiven CreditDirection = "GIVEN"
	// CreditTaken means the business borrowed; the business owes the party.
	CreditTaken CreditDirection = "TAKEN"
)

// CreditStatus tracks whether a credit has been settled.
type CreditStatus string

// Credit status constants.
const (
	CreditPending CreditStatus = "PENDING"
	CreditPaid    CreditStatus = "PAID"
)

// CreditPayment is a single repayment against a credit record.
type CreditPayment struct {
	Date          time.Time
	ID            string
	PaymentMethod PaymentMethod
	Amount        decimal.Decimal
}

// CreditRecord represents money lent to or borrowed from a party.
// Invariant: PaidAmount <= Amount; Status is CreditPaid iff PaidAmount >= Amount.
type CreditRecord struct {
	Date       time.Time
	ID         string
	Party      string
	Note       string
	Direction  CreditDirection
	Status     CreditStatus
	Amount     decimal.Decimal
	PaidAmount decimal.Decimal
	Payments   []CreditPayment
}

// Outstanding returns the unsettled portion of the credit.
func (c *CreditRecord) Outstanding() decimal.Decimal {
	return c.Amount.Sub(c.PaidAmount)
}

// ResolveStatus returns the status implied by the paid amount.
func (c *CreditRecord) ResolveStatus() CreditStatus {
	if c.PaidAmount.GreaterThanOrEqual(c.Amount) {
		return CreditPaid
	}
	return CreditPending
}
