package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestTotals(t *testing.T) {
	t.Run("empty list", func(t *testing.T) {
		m := Totals(nil)
		if !m.Revenue.IsZero() || !m.Expense.IsZero() || !m.Balance.IsZero() {
			t.Errorf("expected all-zero metrics, got %+v", m)
		}
	})

	t.Run("single expense", func(t *testing.T) {
		m := Totals([]Transaction{
			{ID: "t1", Amount: decimal.RequireFromString("-42.50")},
		})
		if !m.Revenue.IsZero() {
			t.Errorf("expected zero revenue, got %s", m.Revenue)
		}
		if !m.Expense.Equal(decimal.RequireFromString("42.50")) {
			t.Errorf("expected expense 42.50, got %s", m.Expense)
		}
		if !m.Balance.Equal(decimal.RequireFromString("-42.50")) {
			t.Errorf("expected balance -42.50, got %s", m.Balance)
		}
	})

	t.Run("mixed list", func(t *testing.T) {
		m := Totals([]Transaction{
			{Amount: decimal.RequireFromString("1500.00")},
			{Amount: decimal.RequireFromString("-82.40")},
			{Amount: decimal.RequireFromString("-120.00")},
		})
		if !m.Revenue.Equal(decimal.RequireFromString("1500.00")) {
			t.Errorf("expected revenue 1500.00, got %s", m.Revenue)
		}
		if !m.Expense.Equal(decimal.RequireFromString("202.40")) {
			t.Errorf("expected expense 202.40, got %s", m.Expense)
		}
		if !m.Balance.Equal(decimal.RequireFromString("1297.60")) {
			t.Errorf("expected balance 1297.60, got %s", m.Balance)
		}
	})
}

func TestFormatEUR(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0,00 €"},
		{"-42.5", "-42,50 €"},
		{"42.5", "42,50 €"},
		{"1234.56", "1 234,56 €"},
		{"-1234567.8", "-1 234 567,80 €"},
		{"999", "999,00 €"},
		{"1000", "1 000,00 €"},
	}
	for _, tt := range tests {
		if got := FormatEUR(decimal.RequireFromString(tt.in)); got != tt.want {
			t.Errorf("FormatEUR(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
