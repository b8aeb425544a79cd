package ledger

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Criteria holds the active filters of the treasury screen. All fields are
// optional; an unset bound is unbounded and an empty set accepts everything.
// Bounds are inclusive. Criteria are combined with logical AND.
type Criteria struct {
	From         *time.Time
	To           *time.Time
	MinAmount    *decimal.Decimal
	MaxAmount    *decimal.Decimal
	CategoryIDs  []string
	Fournisseurs []string
	Search       string // case-insensitive substring of the description
}

// IsZero reports whether no criterion is active.
func (c Criteria) IsZero() bool {
	return c.From == nil && c.To == nil &&
		c.MinAmount == nil && c.MaxAmount == nil &&
		len(c.CategoryIDs) == 0 && len(c.Fournisseurs) == 0 &&
		c.Search == ""
}

// Filter returns the ordered subsequence of transactions satisfying every
// active criterion. It never reorders, never mutates, and never introduces
// items; re-evaluating with the same inputs yields the same output.
func Filter(transactions []Transaction, c Criteria) []Transaction {
	if c.IsZero() {
		out := make([]Transaction, len(transactions))
		copy(out, transactions)
		return out
	}

	categories := toSet(c.CategoryIDs)
	fournisseurs := toSet(c.Fournisseurs)
	search := strings.ToLower(c.Search)

	out := make([]Transaction, 0, len(transactions))
	for _, t := range transactions {
		if c.From != nil && t.Date.Before(*c.From) {
			continue
		}
		if c.To != nil && t.Date.After(*c.To) {
			continue
		}
		if len(categories) > 0 {
			if t.CategoryID == nil || !categories[*t.CategoryID] {
				continue
			}
		}
		if len(fournisseurs) > 0 && !fournisseurs[t.Fournisseur] {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(t.Description), search) {
			continue
		}
		if c.MinAmount != nil && t.Amount.LessThan(*c.MinAmount) {
			continue
		}
		if c.MaxAmount != nil && t.Amount.GreaterThan(*c.MaxAmount) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
