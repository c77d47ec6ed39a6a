package note

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khataflow/khataflow/internal/model"
)

func TestParse_Sales(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantAmount string
		wantParty  string
		wantMethod model.PaymentMethod
	}{
		{
			name:       "simple sale with party",
			text:       "Sold 500 to Rahul",
			wantAmount: "500",
			wantParty:  "Rahul",
			wantMethod: model.PaymentCash,
		},
		{
			name:       "sale with arithmetic amount",
			text:       "Sold 50*8 to Rahul",
			wantAmount: "400",
			wantParty:  "Rahul",
			wantMethod: model.PaymentCash,
		},
		{
			name:       "sale with upi keyword",
			text:       "Sold 250 to Priya upi",
			wantAmount: "250",
			wantParty:  "Priya",
			wantMethod: model.PaymentDigital,
		},
		{
			name:       "sale without party",
			text:       "Sold 120 cash",
			wantAmount: "120",
			wantParty:  "",
			wantMethod: model.PaymentCash,
		},
		{
			name:       "sale with trailing punctuation on party",
			text:       "Sold 300 to Amit.",
			wantAmount: "300",
			wantParty:  "Amit",
			wantMethod: model.PaymentCash,
		},
		{
			name:       "single digit amount falls back to integer literal",
			text:       "Sold 5 to Ravi",
			wantAmount: "5",
			wantParty:  "Ravi",
			wantMethod: model.PaymentCash,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.text, nil)
			require.NoError(t, err)

			assert.Equal(t, model.KindSale, got.Kind)
			assert.True(t, got.Amount.Equal(mustDecimal(t, tt.wantAmount)),
				"amount = %s, want %s", got.Amount, tt.wantAmount)
			assert.Equal(t, tt.wantParty, got.Party)
			assert.Equal(t, tt.wantMethod, got.PaymentMethod)
		})
	}
}

func TestParse_Expenses(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantAmount   string
		wantCategory string
	}{
		{
			name:         "lunch maps to food",
			text:         "Spent 200 on Lunch",
			wantAmount:   "200",
			wantCategory: "food",
		},
		{
			name:         "petrol maps to transport",
			text:         "Paid 900 for petrol",
			wantAmount:   "900",
			wantCategory: "transport",
		},
		{
			name:         "unknown keyword maps to Other",
			text:         "Bought 1500 decorations",
			wantAmount:   "1500",
			wantCategory: "Other",
		},
		{
			name:         "arithmetic expense",
			text:         "Spent 50*4 on chai",
			wantAmount:   "200",
			wantCategory: "food",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.text, nil)
			require.NoError(t, err)

			assert.Equal(t, model.KindExpense, got.Kind)
			assert.True(t, got.Amount.Equal(mustDecimal(t, tt.wantAmount)),
				"amount = %s, want %s", got.Amount, tt.wantAmount)
			assert.Equal(t, tt.wantCategory, got.Category)
		})
	}
}

func TestParse_Credits(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		wantDirection model.CreditDirection
		wantParty     string
	}{
		{
			name:          "lent is given",
			text:          "Lent 1000 to Suresh",
			wantDirection: model.CreditGiven,
			wantParty:     "Suresh",
		},
		{
			name:          "gave is given",
			text:          "Gave 500 to Meena",
			wantDirection: model.CreditGiven,
			wantParty:     "Meena",
		},
		{
			name:          "borrowed is taken",
			text:          "Borrowed 5000 from Amit",
			wantDirection: model.CreditTaken,
			wantParty:     "Amit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.text, nil)
			require.NoError(t, err)

			assert.Equal(t, model.KindCredit, got.Kind)
			assert.Equal(t, tt.wantDirection, got.CreditDirection)
			assert.Equal(t, tt.wantParty, got.Party)
		})
	}
}

func TestParse_ProductCatalog(t *testing.T) {
	catalog := []model.Product{
		{ID: "p1", Name: "Milk", UnitPrice: mustDecimal(t, "30")},
		{ID: "p2", Name: "Bread", UnitPrice: mustDecimal(t, "45")},
	}

	t.Run("quantity times unit price wins over bare number", func(t *testing.T) {
		got, err := Parse("Sold 2 milk to Ravi", catalog)
		require.NoError(t, err)

		assert.Equal(t, model.KindSale, got.Kind)
		assert.True(t, got.Amount.Equal(mustDecimal(t, "60")), "amount = %s, want 60", got.Amount)
		assert.Equal(t, "Ravi", got.Party)
	})

	t.Run("catalog match is case-insensitive", func(t *testing.T) {
		got, err := Parse("sold 3 BREAD", catalog)
		require.NoError(t, err)

		assert.True(t, got.Amount.Equal(mustDecimal(t, "135")), "amount = %s, want 135", got.Amount)
	})

	t.Run("no catalog match falls back to longest number", func(t *testing.T) {
		got, err := Parse("Sold 2 shirts for 800", catalog)
		require.NoError(t, err)

		assert.True(t, got.Amount.Equal(mustDecimal(t, "800")), "amount = %s, want 800", got.Amount)
	})

	t.Run("catalog is ignored for expenses", func(t *testing.T) {
		got, err := Parse("Spent 2 milk", catalog)
		require.NoError(t, err)

		assert.Equal(t, model.KindExpense, got.Kind)
		assert.True(t, got.Amount.Equal(mustDecimal(t, "2")), "amount = %s, want 2", got.Amount)
	})
}

func TestParse_Failures(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "gibberish", text: "gibberish"},
		{name: "empty", text: ""},
		{name: "verb without amount", text: "sold something to someone"},
		{name: "amount without verb", text: "500 to Rahul"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.text, nil)
			require.Error(t, err)
			assert.Nil(t, got)

			var failure *ParseFailure
			require.ErrorAs(t, err, &failure)
			assert.NotEmpty(t, failure.Reason)
		})
	}
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}
