package ledger

import (
	"errors"
	"fmt"

	"github.com/khataflow/khataflow/internal/model"
)

// Partial payments are reconciled virtually. The unpaid remainder of a
// sale is equivalent to a credit given to the customer, and Build
// re-derives the matching entries on every read. No credit record is ever
// persisted for a sale remainder, so sale updates and deletes need no
// cascade and the obligation can never be double counted.

// Validation errors returned on the record-creation path.
var (
	ErrNonPositiveAmount = errors.New("amount must be positive")
	ErrNegativeAmount    = errors.New("amount cannot be negative")
	ErrOverpaid          = errors.New("paid amount exceeds total")
	ErrMissingParty      = errors.New("party is required")
)

// ValidateSale checks the reconciliation invariants before a sale is
// created or updated: a positive total, 0 <= paid <= total, and a named
// customer whenever an unpaid remainder exists (an anonymous walk-in
// cannot owe anything).
func ValidateSale(sale *model.SaleRecord) error {
	if !sale.TotalAmount.IsPositive() {
		return fmt.Errorf("%w: total %s", ErrNonPositiveAmount, sale.TotalAmount)
	}
	if sale.PaidAmount.IsNegative() {
		return fmt.Errorf("%w: paid %s", ErrNegativeAmount, sale.PaidAmount)
	}
	if sale.PaidAmount.GreaterThan(sale.TotalAmount) {
		return fmt.Errorf("%w: paid %s of %s", ErrOverpaid, sale.PaidAmount, sale.TotalAmount)
	}
	if sale.Outstanding().IsPositive() && sale.CustomerName == "" {
		return fmt.Errorf("%w: partial payment of %s leaves %s owed",
			ErrMissingParty, sale.PaidAmount, sale.Outstanding())
	}
	return nil
}

// ValidateExpense checks an expense before creation.
func ValidateExpense(expense *model.ExpenseRecord) error {
	if !expense.Amount.IsPositive() {
		return fmt.Errorf("%w: %s", ErrNonPositiveAmount, expense.Amount)
	}
	return nil
}

// ValidateCredit checks a credit record before creation.
func ValidateCredit(credit *model.CreditRecord) error {
	if !credit.Amount.IsPositive() {
		return fmt.Errorf("%w: %s", ErrNonPositiveAmount, credit.Amount)
	}
	if credit.Party == "" {
		return ErrMissingParty
	}
	if credit.PaidAmount.GreaterThan(credit.Amount) {
		return fmt.Errorf("%w: paid %s of %s", ErrOverpaid, credit.PaidAmount, credit.Amount)
	}
	return nil
}

// ApplyCreditPayment returns a copy of the credit with one repayment
// applied. It enforces paid <= amount and flips the status to paid once
// the credit is fully settled.
func ApplyCreditPayment(credit model.CreditRecord, payment model.CreditPayment) (model.CreditRecord, error) {
	if !payment.Amount.IsPositive() {
		return credit, fmt.Errorf("%w: %s", ErrNonPositiveAmount, payment.Amount)
	}

	newPaid := credit.PaidAmount.Add(payment.Amount)
	if newPaid.GreaterThan(credit.Amount) {
		return credit, fmt.Errorf("%w: %s would exceed %s", ErrOverpaid, newPaid, credit.Amount)
	}

	credit.PaidAmount = newPaid
	credit.Payments = append(append([]model.CreditPayment(nil), credit.Payments...), payment)
	credit.Status = credit.ResolveStatus()
	return credit, nil
}
