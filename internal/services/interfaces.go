package services

import (
	"time"

	"github.com/shopspring/decimal"

	"tresoria/internal/models"
)

// TransactionInput holds every writable field of a transaction. Updates are a
// full-field replace: the stored row ends up exactly as the input describes.
type TransactionInput struct {
	Label       string
	Description string
	Fournisseur string
	Amount      decimal.Decimal
	Date        time.Time
	CategoryID  *string
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(companyID, name string) (*models.Category, error)
	GetCompanyCategories(companyID string) ([]models.Category, error)
	GetCategoryByID(id string) (*models.Category, error)
	UpdateCategory(id, name, color string) (*models.Category, error)
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	ListTransactions(companyID string) ([]models.Transaction, error)
	CreateTransaction(companyID string, input TransactionInput) (*models.Transaction, error)
	UpdateTransaction(companyID, id string, input TransactionInput) (*models.Transaction, error)
	DeleteTransaction(companyID, id string) error
}
