package api

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a treasury API transaction after normalization. The wire
// format is historically loose about the category field; here it is always an
// id (empty when unknown) plus the display name the server sent along.
type Transaction struct {
	ID           string
	Date         time.Time
	Fournisseur  string
	Description  string
	Amount       decimal.Decimal
	CategoryID   string
	CategoryName string
}

// Category is a treasury API category.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// TransactionPayload carries the fields of a create or update call.
// ID is empty for creates. A nil CategoryID saves the row uncategorized.
type TransactionPayload struct {
	ID          string
	Label       string
	Description string
	Fournisseur string
	Amount      decimal.Decimal
	Date        time.Time
	CategoryID  *string
}

// wire shapes the payload the way the contract expects it, with the company
// id attached and the date reduced to a calendar day.
func (p TransactionPayload) wire(companyID string) map[string]interface{} {
	body := map[string]interface{}{
		"label":       p.Label,
		"description": p.Description,
		"amount":      p.Amount,
		"date":        p.Date.Format("2006-01-02"),
		"categoryId":  p.CategoryID,
		"companyId":   companyID,
		"fournisseur": p.Fournisseur,
	}
	if p.ID != "" {
		body["id"] = p.ID
	}
	return body
}

// wireTransaction mirrors the response shape of the treasury API. The
// category field may be an object, a bare name string, or null; category_id
// is present when the server sends the normalized reference.
type wireTransaction struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Fournisseur string          `json:"fournisseur"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	CategoryID  *string         `json:"category_id"`
	Category    json.RawMessage `json:"category"`
}

// normalize converts a wire transaction into the typed form, flattening the
// polymorphic category field.
func (w wireTransaction) normalize() (Transaction, error) {
	date, err := parseDate(w.Date)
	if err != nil {
		return Transaction{}, fmt.Errorf("transaction %s: %w", w.ID, err)
	}

	t := Transaction{
		ID:          w.ID,
		Date:        date,
		Fournisseur: w.Fournisseur,
		Description: w.Description,
		Amount:      w.Amount,
	}
	if w.CategoryID != nil {
		t.CategoryID = *w.CategoryID
	}

	if len(w.Category) > 0 && string(w.Category) != "null" {
		var obj Category
		if err := json.Unmarshal(w.Category, &obj); err == nil {
			if t.CategoryID == "" {
				t.CategoryID = obj.ID
			}
			t.CategoryName = obj.Name
		} else {
			var name string
			if err := json.Unmarshal(w.Category, &name); err != nil {
				return Transaction{}, fmt.Errorf("transaction %s: unrecognized category shape", w.ID)
			}
			t.CategoryName = name
		}
	}
	return t, nil
}

// parseDate accepts the ISO calendar form used by the contract as well as the
// full RFC 3339 timestamps some deployments emit.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}
