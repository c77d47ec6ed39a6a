package storage

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
)

// Amounts are persisted as decimal strings so no precision is lost to
// floating-point round trips.

func scanDecimal(value string, column string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("malformed decimal in column %s: %w", column, err)
	}
	return d, nil
}

// scanNullDecimal returns nil for NULL columns, preserving the
// distinction between "absent" and "zero" that legacy sale rows rely on.
func scanNullDecimal(value sql.NullString, column string) (*decimal.Decimal, error) {
	if !value.Valid {
		return nil, nil
	}
	d, err := scanDecimal(value.String, column)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
