package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khataflow/khataflow/internal/ledger"
	"github.com/khataflow/khataflow/internal/model"
)

func testStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "khata.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func testDate(day int) time.Time {
	return time.Date(2024, 6, day, 0, 0, 0, 0, time.UTC)
}

func TestSales_RoundTrip(t *testing.T) {
	store := testStorage(t)
	ctx := context.Background()

	sale := &model.SaleRecord{
		ID:            "s1",
		Date:          testDate(1),
		CustomerName:  "Rahul",
		PaymentMethod: model.PaymentDigital,
		TotalAmount:   dec(t, "1000"),
		PaidAmount:    dec(t, "400"),
		Note:          "Sold 1000 to Rahul",
	}
	require.NoError(t, store.CreateSale(ctx, sale))

	got, err := store.GetSale(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Rahul", got.CustomerName)
	assert.Equal(t, model.PaymentDigital, got.PaymentMethod)
	assert.True(t, got.TotalAmount.Equal(dec(t, "1000")))
	assert.True(t, got.PaidAmount.Equal(dec(t, "400")))

	require.NoError(t, store.DeleteSale(ctx, "s1"))

	_, err = store.GetSale(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSales_LegacyAmountFallback(t *testing.T) {
	store := testStorage(t)
	ctx := context.Background()

	// Historical rows may carry only one amount column; the read path
	// resolves them via the documented fallback order.
	_, err := store.db.ExecContext(ctx, `
		INSERT INTO sales (id, date, customer_name, total_amount, paid_amount)
		VALUES ('legacy1', ?, 'Old Customer', '750', NULL),
		       ('legacy2', ?, 'Old Customer', NULL, '250'),
		       ('legacy3', ?, 'Old Customer', NULL, NULL)
	`, testDate(1), testDate(2), testDate(3))
	require.NoError(t, err)

	sales, err := store.ListSales(ctx)
	require.NoError(t, err)
	require.Len(t, sales, 3)

	assert.True(t, sales[0].TotalAmount.Equal(dec(t, "750")))
	assert.True(t, sales[0].PaidAmount.Equal(dec(t, "750")))

	assert.True(t, sales[1].TotalAmount.Equal(dec(t, "250")))
	assert.True(t, sales[1].PaidAmount.Equal(dec(t, "250")))

	assert.True(t, sales[2].TotalAmount.IsZero())
	assert.True(t, sales[2].PaidAmount.IsZero())
}

func TestCredits_PaymentLifecycle(t *testing.T) {
	store := testStorage(t)
	ctx := context.Background()

	credit := &model.CreditRecord{
		ID:        "c1",
		Date:      testDate(1),
		Party:     "Suresh",
		Direction: model.CreditGiven,
		Amount:    dec(t, "1000"),
	}
	require.NoError(t, store.CreateCredit(ctx, credit))

	got, err := store.GetCredit(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, model.CreditPending, got.Status)
	assert.Empty(t, got.Payments)

	updated, err := store.AddCreditPayment(ctx, "c1", model.CreditPayment{
		ID: "p1", Date: testDate(5), PaymentMethod: model.PaymentCash, Amount: dec(t, "400"),
	})
	require.NoError(t, err)
	assert.Equal(t, model.CreditPending, updated.Status)
	assert.True(t, updated.PaidAmount.Equal(dec(t, "400")))

	updated, err = store.AddCreditPayment(ctx, "c1", model.CreditPayment{
		ID: "p2", Date: testDate(9), PaymentMethod: model.PaymentDigital, Amount: dec(t, "600"),
	})
	require.NoError(t, err)
	assert.Equal(t, model.CreditPaid, updated.Status)
	require.Len(t, updated.Payments, 2)

	// Overpaying is rejected and nothing is written.
	_, err = store.AddCreditPayment(ctx, "c1", model.CreditPayment{
		ID: "p3", Date: testDate(10), Amount: dec(t, "1"),
	})
	assert.ErrorIs(t, err, ledger.ErrOverpaid)

	got, err = store.GetCredit(ctx, "c1")
	require.NoError(t, err)
	assert.Len(t, got.Payments, 2)
}

func TestCredits_DeleteCascadesPayments(t *testing.T) {
	store := testStorage(t)
	ctx := context.Background()

	credit := &model.CreditRecord{
		ID:        "c1",
		Date:      testDate(1),
		Party:     "Suresh",
		Direction: model.CreditTaken,
		Amount:    dec(t, "500"),
	}
	require.NoError(t, store.CreateCredit(ctx, credit))

	_, err := store.AddCreditPayment(ctx, "c1", model.CreditPayment{
		ID: "p1", Date: testDate(2), Amount: dec(t, "100"),
	})
	require.NoError(t, err)

	require.NoError(t, store.DeleteCredit(ctx, "c1"))

	var count int
	require.NoError(t, store.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM credit_payments WHERE credit_id = 'c1'`).Scan(&count))
	assert.Zero(t, count, "payments must be cascade-deleted with their credit")
}

func TestProducts_RoundTrip(t *testing.T) {
	store := testStorage(t)
	ctx := context.Background()

	require.NoError(t, store.CreateProduct(ctx, &model.Product{
		ID: "p1", Name: "Milk", UnitPrice: dec(t, "30"),
	}))

	// Duplicate names are rejected case-insensitively.
	err := store.CreateProduct(ctx, &model.Product{
		ID: "p2", Name: "milk", UnitPrice: dec(t, "32"),
	})
	assert.Error(t, err)

	products, err := store.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Milk", products[0].Name)
	assert.True(t, products[0].UnitPrice.Equal(dec(t, "30")))
}

func TestGetSnapshot(t *testing.T) {
	store := testStorage(t)
	ctx := context.Background()

	require.NoError(t, store.CreateSale(ctx, &model.SaleRecord{
		ID: "s1", Date: testDate(3), CustomerName: "Rahul",
		PaymentMethod: model.PaymentCash,
		TotalAmount:   dec(t, "1000"), PaidAmount: dec(t, "400"),
	}))
	require.NoError(t, store.CreateExpense(ctx, &model.ExpenseRecord{
		ID: "e1", Date: testDate(4), VendorName: "Sharma Traders",
		Category: "inventory", Amount: dec(t, "2500"),
	}))
	require.NoError(t, store.CreateCredit(ctx, &model.CreditRecord{
		ID: "c1", Date: testDate(5), Party: "Rahul",
		Direction: model.CreditGiven, Amount: dec(t, "500"),
	}))

	snapshot, err := store.GetSnapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snapshot.Sales, 1)
	assert.Len(t, snapshot.Expenses, 1)
	assert.Len(t, snapshot.Credits, 1)

	// The snapshot feeds the ledger core end to end.
	statement := ledger.BuildStatement(*snapshot, "Rahul", model.RoleCustomer)
	require.Len(t, statement.Entries, 3)
	assert.True(t, statement.FinalBalance.Equal(dec(t, "1100")),
		"1000 - 400 + 500 = %s", statement.FinalBalance)
}

func TestMigrate_Idempotent(t *testing.T) {
	store := testStorage(t)
	ctx := context.Background()

	require.NoError(t, store.Migrate(ctx))

	version, err := store.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestValidation(t *testing.T) {
	store := testStorage(t)
	ctx := context.Background()

	assert.ErrorIs(t, store.CreateSale(ctx, nil), ErrNilParameter)
	assert.ErrorIs(t, store.CreateSale(ctx, &model.SaleRecord{Date: testDate(1)}), ErrInvalidSale)
	assert.ErrorIs(t, store.DeleteSale(ctx, ""), ErrEmptyString)
	assert.ErrorIs(t, store.DeleteExpense(ctx, "missing"), ErrNotFound)
	assert.ErrorIs(t, store.CreateCredit(ctx, &model.CreditRecord{
		ID: "c1", Date: testDate(1), Party: "X", Direction: "SIDEWAYS", Amount: dec(t, "10"),
	}), ErrInvalidCredit)
}
