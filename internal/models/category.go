package models

// Category represents a named, colored tag applied to transactions.
// Color is a #RRGGBB hex string; the screen derives a pastel background from it.
type Category struct {
	Base
	CompanyID string `gorm:"type:uuid;not null;index" json:"company_id"`
	Name      string `gorm:"not null" json:"name"`
	Color     string `json:"color"`

	// Relationships
	Transactions []Transaction `gorm:"foreignKey:CategoryID" json:"transactions,omitempty"`
}
