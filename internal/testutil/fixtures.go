package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"tresoria/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// TestCompanyID is the tenant every fixture belongs to unless overridden.
const TestCompanyID = "00000000-0000-0000-0000-000000000001"

// CreateTestCategory creates a category with a unique name.
func CreateTestCategory(t *testing.T, db *gorm.DB, companyID string) *models.Category {
	t.Helper()
	name := fmt.Sprintf("Test Category %d", nextID())
	return CreateTestCategoryWithName(t, db, companyID, name)
}

// CreateTestCategoryWithName creates a category with the given name.
func CreateTestCategoryWithName(t *testing.T, db *gorm.DB, companyID, name string) *models.Category {
	t.Helper()

	category := &models.Category{
		CompanyID: companyID,
		Name:      name,
		Color:     "#3b82f6",
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTransaction creates a transaction with the given signed amount.
func CreateTestTransaction(t *testing.T, db *gorm.DB, companyID string, amount decimal.Decimal, categoryID *string) *models.Transaction {
	t.Helper()

	n := nextID()
	tx := &models.Transaction{
		CompanyID:   companyID,
		Fournisseur: fmt.Sprintf("Fournisseur %d", n),
		Label:       fmt.Sprintf("Fournisseur %d", n),
		Description: fmt.Sprintf("Test transaction %d", n),
		Amount:      amount,
		Date:        time.Now().Truncate(24 * time.Hour),
		CategoryID:  categoryID,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}
