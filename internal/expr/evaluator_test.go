package expr

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want string
	}{
		{
			name: "single number",
			expr: "42",
			want: "42",
		},
		{
			name: "multiplication",
			expr: "50*8",
			want: "400",
		},
		{
			name: "precedence multiplication before addition",
			expr: "2+3*4",
			want: "14",
		},
		{
			name: "parentheses override precedence",
			expr: "(2+3)*4",
			want: "20",
		},
		{
			name: "whitespace is ignored",
			expr: " 50 * 8 + 20 ",
			want: "420",
		},
		{
			name: "decimal numbers",
			expr: "12.5*2",
			want: "25",
		},
		{
			name: "division",
			expr: "100/4",
			want: "25",
		},
		{
			name: "unary minus",
			expr: "-5+10",
			want: "5",
		},
		{
			name: "nested parentheses",
			expr: "((40/4)+5)*2",
			want: "30",
		},
		{
			name: "subtraction chain is left associative",
			expr: "10-3-2",
			want: "5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.expr)
			require.NoError(t, err)
			assert.True(t, got.Equal(mustDecimal(t, tt.want)),
				"Evaluate(%q) = %s, want %s", tt.expr, got, tt.want)
		})
	}
}

func TestEvaluate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		wantErr error
	}{
		{
			name:    "empty input",
			expr:    "",
			wantErr: ErrInvalidExpression,
		},
		{
			name:    "whitespace only",
			expr:    "   ",
			wantErr: ErrInvalidExpression,
		},
		{
			name:    "trailing operator",
			expr:    "50*8+",
			wantErr: ErrInvalidExpression,
		},
		{
			name:    "leading operator",
			expr:    "*8",
			wantErr: ErrInvalidExpression,
		},
		{
			name:    "disallowed letters",
			expr:    "50*eight",
			wantErr: ErrInvalidExpression,
		},
		{
			name:    "disallowed currency symbol",
			expr:    "₹500",
			wantErr: ErrInvalidExpression,
		},
		{
			name:    "unbalanced open parenthesis",
			expr:    "(2+3",
			wantErr: ErrInvalidExpression,
		},
		{
			name:    "unbalanced close parenthesis",
			expr:    "2+3)",
			wantErr: ErrInvalidExpression,
		},
		{
			name:    "double dot number",
			expr:    "1..5+2",
			wantErr: ErrInvalidExpression,
		},
		{
			name:    "adjacent numbers",
			expr:    "5 5",
			wantErr: ErrInvalidExpression,
		},
		{
			name:    "division by zero",
			expr:    "5/0",
			wantErr: ErrNonFiniteResult,
		},
		{
			name:    "division by zero expression",
			expr:    "10/(2-2)",
			wantErr: ErrNonFiniteResult,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evaluate(tt.expr)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
