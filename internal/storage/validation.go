package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/khataflow/khataflow/internal/model"
)

// Validation errors.
var (
	ErrNilContext     = errors.New("context cannot be nil")
	ErrEmptyString    = errors.New("string parameter cannot be empty")
	ErrNilParameter   = errors.New("parameter cannot be nil")
	ErrNotFound       = errors.New("record not found")
	ErrInvalidSale    = errors.New("invalid sale record")
	ErrInvalidExpense = errors.New("invalid expense record")
	ErrInvalidCredit  = errors.New("invalid credit record")
	ErrInvalidProduct = errors.New("invalid product")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateSale validates a sale record before writing.
func validateSale(sale *model.SaleRecord) error {
	if sale == nil {
		return fmt.Errorf("%w: sale", ErrNilParameter)
	}
	if sale.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidSale)
	}
	if sale.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidSale)
	}
	if sale.TotalAmount.IsNegative() || sale.PaidAmount.IsNegative() {
		return fmt.Errorf("%w: negative amount", ErrInvalidSale)
	}
	return nil
}

// validateExpense validates an expense record before writing.
func validateExpense(expense *model.ExpenseRecord) error {
	if expense == nil {
		return fmt.Errorf("%w: expense", ErrNilParameter)
	}
	if expense.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidExpense)
	}
	if expense.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidExpense)
	}
	if expense.Amount.IsNegative() {
		return fmt.Errorf("%w: negative amount", ErrInvalidExpense)
	}
	return nil
}

// validateCredit validates a credit record before writing.
func validateCredit(credit *model.CreditRecord) error {
	if credit == nil {
		return fmt.Errorf("%w: credit", ErrNilParameter)
	}
	if credit.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidCredit)
	}
	if credit.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidCredit)
	}
	if credit.Party == "" {
		return fmt.Errorf("%w: missing party", ErrInvalidCredit)
	}
	if credit.Direction != model.CreditGiven && credit.Direction != model.CreditTaken {
		return fmt.Errorf("%w: unknown direction %q", ErrInvalidCredit, credit.Direction)
	}
	if credit.Amount.IsNegative() || credit.PaidAmount.IsNegative() {
		return fmt.Errorf("%w: negative amount", ErrInvalidCredit)
	}
	return nil
}

// validateProduct validates a product before writing.
func validateProduct(product *model.Product) error {
	if product == nil {
		return fmt.Errorf("%w: product", ErrNilParameter)
	}
	if product.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidProduct)
	}
	if product.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidProduct)
	}
	if product.UnitPrice.IsNegative() {
		return fmt.Errorf("%w: negative unit price", ErrInvalidProduct)
	}
	return nil
}
