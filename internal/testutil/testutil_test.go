package testutil_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"tresoria/internal/errors"
	"tresoria/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Verify all tables exist by doing a simple count query on each model.
	var count int64
	for _, table := range []string{"categories", "transactions"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	category := testutil.CreateTestCategory(t, db, testutil.TestCompanyID)
	if category.ID == "" {
		t.Fatal("category should have a generated id")
	}

	tx := testutil.CreateTestTransaction(t, db, testutil.TestCompanyID, decimal.NewFromInt(-1000), &category.ID)
	if !tx.Amount.Equal(decimal.NewFromInt(-1000)) {
		t.Errorf("expected amount -1000, got %s", tx.Amount)
	}
	if tx.CategoryID == nil || *tx.CategoryID != category.ID {
		t.Error("transaction should reference the created category")
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrCategoryNotFound, "custom message")
	testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
