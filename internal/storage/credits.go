package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/khataflow/khataflow/internal/ledger"
	"github.com/khataflow/khataflow/internal/model"
)

// CreateCredit inserts a new credit record along with any initial payments.
func (s *SQLiteStorage) CreateCredit(ctx context.Context, credit *model.CreditRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCredit(credit); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO credits (id, date, party, direction, amount, paid_amount, status, note)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		credit.ID,
		credit.Date,
		credit.Party,
		string(credit.Direction),
		credit.Amount.String(),
		credit.PaidAmount.String(),
		string(credit.ResolveStatus()),
		credit.Note,
	)
	if err != nil {
		return fmt.Errorf("failed to insert credit: %w", err)
	}

	for _, payment := range credit.Payments {
		if err := insertCreditPayment(ctx, tx, credit.ID, payment); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetCredit fetches a single credit with its payments.
func (s *SQLiteStorage) GetCredit(ctx context.Context, id string) (*model.CreditRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, date, party, direction, amount, paid_amount, status, note
		FROM credits WHERE id = ?
	`, id)

	credit, err := scanCredit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: credit %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	credit.Payments, err = s.paymentsForCredit(ctx, id)
	if err != nil {
		return nil, err
	}
	return credit, nil
}

// ListCredits returns all credits with their payments in deterministic
// order (date, then ID).
func (s *SQLiteStorage) ListCredits(ctx context.Context) ([]model.CreditRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, party, direction, amount, paid_amount, status, note
		FROM credits ORDER BY date ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query credits: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var credits []model.CreditRecord
	for rows.Next() {
		credit, scanErr := scanCredit(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		credits = append(credits, *credit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate credits: %w", err)
	}

	for i := range credits {
		credits[i].Payments, err = s.paymentsForCredit(ctx, credits[i].ID)
		if err != nil {
			return nil, err
		}
	}

	return credits, nil
}

// AddCreditPayment records a repayment against a credit, enforcing the
// paid <= amount invariant and flipping the status once settled. The
// payment row and the credit update commit in one transaction.
func (s *SQLiteStorage) AddCreditPayment(ctx context.Context, creditID string, payment model.CreditPayment) (*model.CreditRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(creditID, "creditID"); err != nil {
		return nil, err
	}

	credit, err := s.GetCredit(ctx, creditID)
	if err != nil {
		return nil, err
	}

	updated, err := ledger.ApplyCreditPayment(*credit, payment)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertCreditPayment(ctx, tx, creditID, payment); err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE credits SET paid_amount = ?, status = ? WHERE id = ?
	`, updated.PaidAmount.String(), string(updated.Status), creditID)
	if err != nil {
		return nil, fmt.Errorf("failed to update credit: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit payment: %w", err)
	}

	return &updated, nil
}

// DeleteCredit removes a credit and cascade-deletes its payments in a
// single transaction.
func (s *SQLiteStorage) DeleteCredit(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM credit_payments WHERE credit_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete credit payments: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM credits WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete credit: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: credit %s", ErrNotFound, id)
	}

	return tx.Commit()
}

func insertCreditPayment(ctx context.Context, tx *sql.Tx, creditID string, payment model.CreditPayment) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO credit_payments (id, credit_id, date, amount, payment_method)
		VALUES (?, ?, ?, ?, ?)
	`,
		payment.ID,
		creditID,
		payment.Date,
		payment.Amount.String(),
		string(payment.PaymentMethod),
	)
	if err != nil {
		return fmt.Errorf("failed to insert credit payment: %w", err)
	}
	return nil
}

// paymentsForCredit loads the repayments for one credit in deterministic
// order (date, then ID).
func (s *SQLiteStorage) paymentsForCredit(ctx context.Context, creditID string) ([]model.CreditPayment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, amount, payment_method
		FROM credit_payments WHERE credit_id = ? ORDER BY date ASC, id ASC
	`, creditID)
	if err != nil {
		return nil, fmt.Errorf("failed to query credit payments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var payments []model.CreditPayment
	for rows.Next() {
		var payment model.CreditPayment
		var amount, method string
		if err := rows.Scan(&payment.ID, &payment.Date, &amount, &method); err != nil {
			return nil, fmt.Errorf("failed to scan credit payment: %w", err)
		}
		payment.Amount, err = scanDecimal(amount, "amount")
		if err != nil {
			return nil, err
		}
		payment.PaymentMethod = model.PaymentMethod(method)
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate credit payments: %w", err)
	}

	return payments, nil
}

// scanCredit reads one credit row without its payments.
func scanCredit(row rowScanner) (*model.CreditRecord, error) {
	var credit model.CreditRecord
	var direction, amount, paid, status string

	if err := row.Scan(&credit.ID, &credit.Date, &credit.Party, &direction, &amount, &paid, &status, &credit.Note); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan credit: %w", err)
	}

	var err error
	credit.Amount, err = scanDecimal(amount, "amount")
	if err != nil {
		return nil, err
	}
	credit.PaidAmount, err = scanDecimal(paid, "paid_amount")
	if err != nil {
		return nil, err
	}

	credit.Direction = model.CreditDirection(direction)
	credit.Status = model.CreditStatus(status)
	return &credit, nil
}
