// Package ledger holds the client-side treasury domain: transactions,
// categories, filtering, metrics, and color derivation. It is pure data and
// functions; all I/O lives in the api and screen packages.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind classifies a transaction by the direction of money movement.
type Kind string

const (
	KindExpense Kind = "expense"
	KindIncome  Kind = "income"
)

// Transaction is a single financial movement as the screen sees it.
// CategoryID is a nullable reference into the category store; display names
// are always resolved through the store, never joined by name.
type Transaction struct {
	ID          string
	Date        time.Time
	Fournisseur string
	Description string
	Amount      decimal.Decimal
	CategoryID  *string
}

// Kind derives the transaction kind from the stored sign.
func (t Transaction) Kind() Kind {
	if t.Amount.IsNegative() {
		return KindExpense
	}
	return KindIncome
}

// SignedAmount derives the stored amount from the kind toggle and the entered
// value. The sign of the input is discarded: expenses are always negative and
// income always positive, regardless of what numeral the user typed.
func SignedAmount(kind Kind, entered decimal.Decimal) decimal.Decimal {
	abs := entered.Abs()
	if kind == KindExpense {
		return abs.Neg()
	}
	return abs
}

// Category is a named, colored tag applied to transactions.
type Category struct {
	ID    string
	Name  string
	Color string
}
