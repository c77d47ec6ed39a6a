package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/khataflow/khataflow/internal/ledger"
	"github.com/khataflow/khataflow/internal/model"
)

// CreateSale inserts a new sale record.
func (s *SQLiteStorage) CreateSale(ctx context.Context, sale *model.SaleRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSale(sale); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sales (id, date, customer_name, total_amount, paid_amount, payment_method, note)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		sale.ID,
		sale.Date,
		sale.CustomerName,
		sale.TotalAmount.String(),
		sale.PaidAmount.String(),
		string(sale.PaymentMethod),
		sale.Note,
	)
	if err != nil {
		return fmt.Errorf("failed to insert sale: %w", err)
	}

	return nil
}

// GetSale fetches a single sale by ID.
func (s *SQLiteStorage) GetSale(ctx context.Context, id string) (*model.SaleRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, date, customer_name, total_amount, paid_amount, payment_method, note
		FROM sales WHERE id = ?
	`, id)

	sale, err := scanSale(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: sale %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// ListSales returns all sales in deterministic order (date, then ID).
func (s *SQLiteStorage) ListSales(ctx context.Context) ([]model.SaleRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, customer_name, total_amount, paid_amount, payment_method, note
		FROM sales ORDER BY date ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sales []model.SaleRecord
	for rows.Next() {
		sale, scanErr := scanSale(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		sales = append(sales, *sale)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sales: %w", err)
	}

	return sales, nil
}

// DeleteSale removes a sale. There is nothing to cascade: the partial
// payment remainder is derived on read, never persisted as a credit.
func (s *SQLiteStorage) DeleteSale(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM sales WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete sale: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: sale %s", ErrNotFound, id)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanSale reads one sale row, resolving legacy rows where only one of
// the two amount columns is present.
func scanSale(row rowScanner) (*model.SaleRecord, error) {
	var sale model.SaleRecord
	var total, paid sql.NullString
	var method string

	if err := row.Scan(&sale.ID, &sale.Date, &sale.CustomerName, &total, &paid, &method, &sale.Note); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan sale: %w", err)
	}

	totalDec, err := scanNullDecimal(total, "total_amount")
	if err != nil {
		return nil, err
	}
	paidDec, err := scanNullDecimal(paid, "paid_amount")
	if err != nil {
		return nil, err
	}

	sale.TotalAmount, sale.PaidAmount = ledger.ResolveSaleAmounts(totalDec, paidDec)
	sale.PaymentMethod = model.PaymentMethod(method)
	return &sale, nil
}
