package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts travel as JSON numbers (150.00), not strings, in API responses.
	decimal.MarshalJSONWithoutQuotes = true
}

// Transaction represents a single financial movement scoped to a company.
// Amount is signed: negative for expenses, positive for income. The sign is
// derived by the client from the kind toggle, never from a typed number.
type Transaction struct {
	Base
	CompanyID   string          `gorm:"type:uuid;not null;index" json:"company_id"`
	Fournisseur string          `json:"fournisseur"`
	Label       string          `json:"label"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
	Date        time.Time       `gorm:"not null" json:"date"`
	CategoryID  *string         `gorm:"type:uuid" json:"category_id,omitempty"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
