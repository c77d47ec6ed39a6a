package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khataflow/khataflow/internal/model"
)

func date(t *testing.T, day int) time.Time {
	t.Helper()
	return time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC)
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestBuild_PartialPaymentSale(t *testing.T) {
	snapshot := model.Snapshot{
		Sales: []model.SaleRecord{{
			ID:            "s1",
			Date:          date(t, 1),
			CustomerName:  "Rahul",
			PaymentMethod: model.PaymentCash,
			TotalAmount:   dec(t, "1000"),
			PaidAmount:    dec(t, "400"),
		}},
	}

	entries := Build(snapshot, "Rahul", model.RoleCustomer)
	require.Len(t, entries, 2)

	assert.Equal(t, model.PolarityCredit, entries[0].Polarity)
	assert.True(t, entries[0].Amount.Equal(dec(t, "1000")))
	assert.Equal(t, "Sale", entries[0].Description)

	assert.Equal(t, model.PolarityDebit, entries[1].Polarity)
	assert.True(t, entries[1].Amount.Equal(dec(t, "400")))
	assert.Equal(t, "Payment received", entries[1].Description)

	statement := WithRunningBalance(entries)
	assert.True(t, statement.FinalBalance.Equal(dec(t, "600")),
		"net contribution = %s, want 600", statement.FinalBalance)
}

func TestBuild_FullPaymentSale(t *testing.T) {
	snapshot := model.Snapshot{
		Sales: []model.SaleRecord{{
			ID:           "s1",
			Date:         date(t, 1),
			CustomerName: "Rahul",
			TotalAmount:  dec(t, "1000"),
			PaidAmount:   dec(t, "1000"),
		}},
	}

	entries := Build(snapshot, "Rahul", model.RoleCustomer)
	require.Len(t, entries, 2)

	assert.Equal(t, "Full payment", entries[1].Description)
	assert.Equal(t, model.PolarityDebit, entries[1].Polarity)
	assert.True(t, entries[1].Amount.Equal(dec(t, "1000")))

	// Never both settlement shapes for one sale.
	for _, entry := range entries {
		assert.NotEqual(t, "Payment received", entry.Description)
	}

	statement := WithRunningBalance(entries)
	assert.True(t, statement.FinalBalance.IsZero())
}

func TestBuild_ZeroSale(t *testing.T) {
	snapshot := model.Snapshot{
		Sales: []model.SaleRecord{{
			ID:           "s1",
			Date:         date(t, 1),
			CustomerName: "Rahul",
			TotalAmount:  decimal.Zero,
			PaidAmount:   decimal.Zero,
		}},
	}

	entries := Build(snapshot, "Rahul", model.RoleCustomer)
	require.Len(t, entries, 1, "a zero sale with nothing paid emits only the base entry")
	assert.True(t, entries[0].Amount.IsZero())
}

func TestBuild_PartyMatching(t *testing.T) {
	snapshot := model.Snapshot{
		Sales: []model.SaleRecord{
			{ID: "s1", Date: date(t, 1), CustomerName: "Rahul", TotalAmount: dec(t, "100"), PaidAmount: dec(t, "100")},
			{ID: "s2", Date: date(t, 2), CustomerName: "Priya", TotalAmount: dec(t, "200"), PaidAmount: dec(t, "200")},
		},
	}

	entries := Build(snapshot, "rahul", model.RoleCustomer)
	require.Len(t, entries, 2, "party names match case-insensitively")
	for _, entry := range entries {
		assert.True(t, entry.Amount.Equal(dec(t, "100")))
	}
}

func TestBuild_VendorRole(t *testing.T) {
	snapshot := model.Snapshot{
		Sales: []model.SaleRecord{{
			ID: "s1", Date: date(t, 1), CustomerName: "Sharma Traders",
			TotalAmount: dec(t, "500"), PaidAmount: dec(t, "500"),
		}},
		Expenses: []model.ExpenseRecord{
			{ID: "e1", Date: date(t, 2), VendorName: "Sharma Traders", Category: "inventory", Amount: dec(t, "2500")},
			{ID: "e2", Date: date(t, 3), VendorName: "Other Vendor", Amount: dec(t, "999")},
		},
	}

	entries := Build(snapshot, "Sharma Traders", model.RoleVendor)
	require.Len(t, entries, 1, "sales are not considered for vendors")

	assert.Equal(t, model.PolarityDebit, entries[0].Polarity)
	assert.True(t, entries[0].Amount.Equal(dec(t, "2500")))
	assert.Equal(t, "Expense (inventory)", entries[0].Description)
}

func TestBuild_Credits(t *testing.T) {
	tests := []struct {
		name            string
		direction       model.CreditDirection
		wantInitial     model.EntryPolarity
		wantPayment     model.EntryPolarity
		wantInitialDesc string
		wantPaymentDesc string
	}{
		{
			name:            "credit given",
			direction:       model.CreditGiven,
			wantInitial:     model.PolarityCredit,
			wantPayment:     model.PolarityDebit,
			wantInitialDesc: "Credit given",
			wantPaymentDesc: "Payment received",
		},
		{
			name:            "credit taken",
			direction:       model.CreditTaken,
			wantInitial:     model.PolarityDebit,
			wantPayment:     model.PolarityCredit,
			wantInitialDesc: "Credit taken",
			wantPaymentDesc: "Payment made",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := model.Snapshot{
				Credits: []model.CreditRecord{{
					ID:         "c1",
					Date:       date(t, 1),
					Party:      "Suresh",
					Direction:  tt.direction,
					Status:     model.CreditPending,
					Amount:     dec(t, "1000"),
					PaidAmount: dec(t, "300"),
					Payments: []model.CreditPayment{{
						ID: "p1", Date: date(t, 5), PaymentMethod: model.PaymentDigital, Amount: dec(t, "300"),
					}},
				}},
			}

			entries := Build(snapshot, "Suresh", model.RoleCustomer)
			require.Len(t, entries, 2)

			assert.Equal(t, tt.wantInitial, entries[0].Polarity)
			assert.Equal(t, tt.wantInitialDesc, entries[0].Description)
			assert.True(t, entries[0].Amount.Equal(dec(t, "1000")))

			assert.Equal(t, tt.wantPayment, entries[1].Polarity)
			assert.Equal(t, tt.wantPaymentDesc, entries[1].Description)
			assert.True(t, entries[1].Amount.Equal(dec(t, "300")))
			assert.Equal(t, model.PaymentDigital, entries[1].PaymentMethod)
		})
	}
}

func TestBuild_CreditsContributeForBothRoles(t *testing.T) {
	snapshot := model.Snapshot{
		Credits: []model.CreditRecord{{
			ID: "c1", Date: date(t, 1), Party: "Sharma Traders",
			Direction: model.CreditTaken, Amount: dec(t, "700"),
		}},
	}

	for _, role := range []model.PartyRole{model.RoleCustomer, model.RoleVendor} {
		entries := Build(snapshot, "Sharma Traders", role)
		require.Len(t, entries, 1, "role %s", role)
	}
}

func TestBuild_Idempotent(t *testing.T) {
	snapshot := model.Snapshot{
		Sales: []model.SaleRecord{
			{ID: "s1", Date: date(t, 3), CustomerName: "Rahul", TotalAmount: dec(t, "1000"), PaidAmount: dec(t, "400")},
			{ID: "s2", Date: date(t, 1), CustomerName: "Rahul", TotalAmount: dec(t, "250"), PaidAmount: dec(t, "250")},
		},
		Credits: []model.CreditRecord{{
			ID: "c1", Date: date(t, 2), Party: "Rahul", Direction: model.CreditGiven, Amount: dec(t, "500"),
		}},
	}

	first := WithRunningBalance(Build(snapshot, "Rahul", model.RoleCustomer))
	second := WithRunningBalance(Build(snapshot, "Rahul", model.RoleCustomer))

	assert.Equal(t, first, second, "identical snapshots must yield identical statements")
}
