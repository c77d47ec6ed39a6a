package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khataflow/khataflow/internal/ledger"
	"github.com/khataflow/khataflow/internal/model"
)

func TestSummaryLine(t *testing.T) {
	tests := []struct {
		name     string
		balance  string
		role     model.PartyRole
		expected string
	}{
		{
			name:     "customer positive owes the business",
			balance:  "600",
			role:     model.RoleCustomer,
			expected: "Rahul owes you 600",
		},
		{
			name:     "customer negative means the business owes",
			balance:  "-150",
			role:     model.RoleCustomer,
			expected: "You owe Rahul 150",
		},
		{
			name:     "vendor positive is a neutral balance",
			balance:  "600",
			role:     model.RoleVendor,
			expected: "Balance with Rahul: 600",
		},
		{
			name:     "vendor negative means the business owes",
			balance:  "-150",
			role:     model.RoleVendor,
			expected: "You owe Rahul 150",
		},
		{
			name:     "zero reads as owed to the business for customers",
			balance:  "0",
			role:     model.RoleCustomer,
			expected: "Rahul owes you 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			statement := &ledger.Statement{FinalBalance: dec(t, tt.balance)}

			assert.Contains(t, summaryLine(statement, "Rahul", tt.role), tt.expected)
		})
	}
}

func TestParseRole(t *testing.T) {
	role, err := parseRole("Vendor")
	require.NoError(t, err)
	assert.Equal(t, model.RoleVendor, role)

	role, err = parseRole("")
	require.NoError(t, err)
	assert.Equal(t, model.RoleCustomer, role)

	_, err = parseRole("stranger")
	assert.Error(t, err)
}
