package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Metrics summarizes a transaction list for the three header cards.
// Expense is reported as a positive magnitude; Balance is Revenue - Expense.
type Metrics struct {
	Revenue decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

// Totals computes the metric cards over the given transactions.
func Totals(transactions []Transaction) Metrics {
	revenue := decimal.Zero
	expense := decimal.Zero
	for _, t := range transactions {
		if t.Amount.IsNegative() {
			expense = expense.Add(t.Amount.Abs())
		} else {
			revenue = revenue.Add(t.Amount)
		}
	}
	return Metrics{
		Revenue: revenue,
		Expense: expense,
		Balance: revenue.Sub(expense),
	}
}

// FormatEUR renders an amount the way the screen displays it: two decimals,
// comma decimal separator, space-grouped thousands, trailing euro sign.
// Examples: 0 -> "0,00 €", -42.5 -> "-42,50 €", 1234.56 -> "1 234,56 €".
func FormatEUR(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	negative := strings.HasPrefix(fixed, "-")
	if negative {
		fixed = fixed[1:]
	}

	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var sb strings.Builder
	if negative {
		sb.WriteByte('-')
	}
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte(' ')
		}
		sb.WriteRune(digit)
	}
	sb.WriteByte(',')
	sb.WriteString(fracPart)
	sb.WriteString(" €")
	return sb.String()
}
