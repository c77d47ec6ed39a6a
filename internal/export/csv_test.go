package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khataflow/khataflow/internal/ledger"
	"github.com/khataflow/khataflow/internal/model"
)

func TestWriteStatementCSV(t *testing.T) {
	snapshot := model.Snapshot{
		Sales: []model.SaleRecord{{
			ID:            "s1",
			Date:          time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			CustomerName:  "Rahul",
			PaymentMethod: model.PaymentCash,
			TotalAmount:   decimal.RequireFromString("1000"),
			PaidAmount:    decimal.RequireFromString("400"),
		}},
	}
	statement := ledger.BuildStatement(snapshot, "Rahul", model.RoleCustomer)

	var buf bytes.Buffer
	require.NoError(t, WriteStatementCSV(&buf, "Rahul", statement))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4, "header + two entries + totals")

	assert.Equal(t, []string{"Date", "Party", "Description", "Method", "Credit", "Debit", "Balance"}, records[0])

	assert.Equal(t, "2024-03-01", records[1][0])
	assert.Equal(t, "Sale", records[1][2])
	assert.Equal(t, "1000", records[1][4])
	assert.Equal(t, "1000", records[1][6])

	assert.Equal(t, "Payment received", records[2][2])
	assert.Equal(t, "400", records[2][5])
	assert.Equal(t, "600", records[2][6])

	totals := records[3]
	assert.Equal(t, "Total", totals[2])
	assert.Equal(t, "1000", totals[4])
	assert.Equal(t, "400", totals[5])
	assert.Equal(t, "600", totals[6])
}

func TestWriteStatementCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteStatementCSV(&buf, "Nobody", ledger.Statement{
		TotalCredit:  decimal.Zero,
		TotalDebit:   decimal.Zero,
		FinalBalance: decimal.Zero,
	}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2, "header + totals")
	assert.Equal(t, "0", records[1][6])
}
