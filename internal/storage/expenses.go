package storage

import (
	"context"
	"fmt"

	"github.com/khataflow/khataflow/internal/model"
)

// CreateExpense inserts a new expense record.
func (s *SQLiteStorage) CreateExpense(ctx context.Context, expense *model.ExpenseRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateExpense(expense); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO expenses (id, date, vendor_name, category, amount, note)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		expense.ID,
		expense.Date,
		expense.VendorName,
		expense.Category,
		expense.Amount.String(),
		expense.Note,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	return nil
}

// ListExpenses returns all expenses in deterministic order (date, then ID).
func (s *SQLiteStorage) ListExpenses(ctx context.Context) ([]model.ExpenseRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, vendor_name, category, amount, note
		FROM expenses ORDER BY date ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var expenses []model.ExpenseRecord
	for rows.Next() {
		var expense model.ExpenseRecord
		var amount string
		if err := rows.Scan(&expense.ID, &expense.Date, &expense.VendorName, &expense.Category, &amount, &expense.Note); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expense.Amount, err = scanDecimal(amount, "amount")
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	return expenses, nil
}

// DeleteExpense removes an expense.
func (s *SQLiteStorage) DeleteExpense(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: expense %s", ErrNotFound, id)
	}

	return nil
}
